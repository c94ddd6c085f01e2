// Package motion converts per-frame body landmarks into joint angles and a
// debounced exercise-phase / repetition-count state machine.
package motion

import (
	"math"

	"github.com/claude/repcoach/internal/pose"
)

// JointAngles holds the biomechanical angles derived from one frame. The six
// joint angles are interior angles in degrees, [0,180], with 180 a fully
// extended joint. Back is the trunk's signed deviation from vertical in
// degrees (upright ≈ 0) and is deliberately not clamped; extreme values mean
// the trunk reading is unreliable, not that an error occurred.
type JointAngles struct {
	LeftKnee   float64 `json:"left_knee"`
	RightKnee  float64 `json:"right_knee"`
	LeftHip    float64 `json:"left_hip"`
	RightHip   float64 `json:"right_hip"`
	LeftElbow  float64 `json:"left_elbow"`
	RightElbow float64 `json:"right_elbow"`
	Back       float64 `json:"back"`
}

// angleTriples defines the (proximal, vertex, distal) landmark indices for
// each named joint angle.
var angleTriples = []struct {
	proximal, vertex, distal int
	assign                   func(*JointAngles, float64)
}{
	{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, func(a *JointAngles, v float64) { a.LeftKnee = v }},
	{pose.RightHip, pose.RightKnee, pose.RightAnkle, func(a *JointAngles, v float64) { a.RightKnee = v }},
	{pose.LeftShoulder, pose.LeftHip, pose.LeftKnee, func(a *JointAngles, v float64) { a.LeftHip = v }},
	{pose.RightShoulder, pose.RightHip, pose.RightKnee, func(a *JointAngles, v float64) { a.RightHip = v }},
	{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist, func(a *JointAngles, v float64) { a.LeftElbow = v }},
	{pose.RightShoulder, pose.RightElbow, pose.RightWrist, func(a *JointAngles, v float64) { a.RightElbow = v }},
}

// ExtractAngles computes all joint angles for one frame. Angles whose three
// required landmarks are not all present degrade to 0; the function never
// fails.
func ExtractAngles(f pose.Frame) JointAngles {
	var out JointAngles
	for _, t := range angleTriples {
		a, okA := f.At(t.proximal)
		b, okB := f.At(t.vertex)
		c, okC := f.At(t.distal)
		if !okA || !okB || !okC {
			continue
		}
		t.assign(&out, interiorAngle(a, b, c))
	}
	out.Back = backAngle(f)
	return out
}

// interiorAngle returns the unsigned interior angle at vertex b in degrees,
// always in [0,180].
func interiorAngle(a, b, c pose.Landmark) float64 {
	rad := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(rad * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// backAngle returns the trunk's deviation from vertical: the angle of the
// hip-midpoint → shoulder-midpoint vector with the 90° vertical baseline
// subtracted. 0 when present landmarks are insufficient.
func backAngle(f pose.Frame) float64 {
	hip, okH := f.Midpoint(pose.LeftHip, pose.RightHip)
	shoulder, okS := f.Midpoint(pose.LeftShoulder, pose.RightShoulder)
	if !okH || !okS {
		return 0
	}
	// Y grows downward, so an upright trunk has hip.Y > shoulder.Y and the
	// vector angle reads 90°.
	rad := math.Atan2(hip.Y-shoulder.Y, shoulder.X-hip.X)
	return rad*180/math.Pi - 90
}
