package motion

import (
	"math"
	"testing"

	"github.com/claude/repcoach/internal/pose"
)

// standingFrame builds a frame for an upright body facing the camera, with
// every landmark fully visible.
func standingFrame() pose.Frame {
	f := make(pose.Frame, pose.NumLandmarks)
	set := func(idx int, x, y float64) {
		f[idx] = pose.Landmark{X: x, Y: y, Visibility: 1}
	}
	set(pose.Nose, 0.50, 0.10)
	set(pose.LeftShoulder, 0.45, 0.25)
	set(pose.RightShoulder, 0.55, 0.25)
	set(pose.LeftElbow, 0.42, 0.38)
	set(pose.RightElbow, 0.58, 0.38)
	set(pose.LeftWrist, 0.40, 0.50)
	set(pose.RightWrist, 0.60, 0.50)
	set(pose.LeftHip, 0.46, 0.52)
	set(pose.RightHip, 0.54, 0.52)
	set(pose.LeftKnee, 0.46, 0.72)
	set(pose.RightKnee, 0.54, 0.72)
	set(pose.LeftAnkle, 0.46, 0.92)
	set(pose.RightAnkle, 0.54, 0.92)
	return f
}

// TestInteriorAngleRange verifies the [0,180] range invariant across a sweep
// of vertex geometries, including collinear and reflex arrangements.
func TestInteriorAngleRange(t *testing.T) {
	b := pose.Landmark{X: 0.5, Y: 0.5}
	for i := 0; i < 36; i++ {
		for j := 0; j < 36; j++ {
			a := pose.Landmark{
				X: 0.5 + 0.2*math.Cos(float64(i)*10*math.Pi/180),
				Y: 0.5 + 0.2*math.Sin(float64(i)*10*math.Pi/180),
			}
			c := pose.Landmark{
				X: 0.5 + 0.3*math.Cos(float64(j)*10*math.Pi/180),
				Y: 0.5 + 0.3*math.Sin(float64(j)*10*math.Pi/180),
			}
			got := interiorAngle(a, b, c)
			if got < 0 || got > 180 {
				t.Fatalf("interiorAngle out of range: %v (i=%d j=%d)", got, i, j)
			}
		}
	}
}

// TestInteriorAngleKnownValues checks a right angle and a straight (fully
// extended) joint.
func TestInteriorAngleKnownValues(t *testing.T) {
	b := pose.Landmark{X: 0, Y: 0}
	right := interiorAngle(pose.Landmark{X: 1, Y: 0}, b, pose.Landmark{X: 0, Y: 1})
	if math.Abs(right-90) > 1e-9 {
		t.Errorf("right angle = %v, want 90", right)
	}
	straight := interiorAngle(pose.Landmark{X: -1, Y: 0}, b, pose.Landmark{X: 1, Y: 0})
	if math.Abs(straight-180) > 1e-9 {
		t.Errorf("straight angle = %v, want 180", straight)
	}
}

// TestExtractAnglesStanding verifies an upright body reads near-extended
// knees/hips and a near-zero back angle.
func TestExtractAnglesStanding(t *testing.T) {
	angles := ExtractAngles(standingFrame())
	if angles.LeftKnee < 170 || angles.RightKnee < 170 {
		t.Errorf("standing knees = %.1f/%.1f, want ≥170", angles.LeftKnee, angles.RightKnee)
	}
	if math.Abs(angles.Back) > 5 {
		t.Errorf("standing back angle = %.1f, want ≈0", angles.Back)
	}
}

// TestExtractAnglesMissingLandmarks verifies the degenerate-input invariant:
// any angle missing one of its three landmarks is exactly 0 and nothing
// panics. A frame truncated below the leg indices loses both knee angles.
func TestExtractAnglesMissingLandmarks(t *testing.T) {
	full := standingFrame()
	truncated := full[:pose.LeftKnee] // knees/ankles not delivered

	angles := ExtractAngles(truncated)
	if angles.LeftKnee != 0 || angles.RightKnee != 0 {
		t.Errorf("knee angles = %.1f/%.1f, want 0 for missing landmarks", angles.LeftKnee, angles.RightKnee)
	}
	if angles.LeftHip != 0 || angles.RightHip != 0 {
		t.Errorf("hip angles = %.1f/%.1f, want 0 (knee is part of the hip triple)", angles.LeftHip, angles.RightHip)
	}
	// Elbows only need shoulder/elbow/wrist, all still present.
	if angles.LeftElbow == 0 || angles.RightElbow == 0 {
		t.Error("elbow angles should still compute from an upper-body frame")
	}
}

// TestExtractAnglesEmptyFrame verifies a fully empty frame yields the zero
// value rather than an error or panic.
func TestExtractAnglesEmptyFrame(t *testing.T) {
	angles := ExtractAngles(pose.Frame{})
	if angles != (JointAngles{}) {
		t.Errorf("empty frame angles = %+v, want zero value", angles)
	}
}

// TestBackAngleForwardLean verifies a forward-leaning trunk reads a nonzero
// signed value rather than being clamped away.
func TestBackAngleForwardLean(t *testing.T) {
	f := standingFrame()
	// Shift shoulders forward (in +X) relative to hips.
	f[pose.LeftShoulder].X += 0.2
	f[pose.RightShoulder].X += 0.2

	angles := ExtractAngles(f)
	if math.Abs(angles.Back) < 10 {
		t.Errorf("leaning back angle = %.1f, want clearly nonzero", angles.Back)
	}
}
