// Package pose defines the body-landmark data model produced by the external
// pose tracker, one frame per captured video frame.
package pose

// Body landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	NumLandmarks  = 33
)

// Landmark is a single tracked anatomical point. X and Y are normalized frame
// coordinates in [0,1] (Y grows downward), Z is relative depth, and Visibility
// is the tracker's confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Frame is one frame's ordered landmark list. The same index always denotes
// the same anatomical point; a frame shorter than an index means that point
// was not delivered.
type Frame []Landmark

// At returns the landmark at index i and whether it was delivered this frame.
func (f Frame) At(i int) (Landmark, bool) {
	if i < 0 || i >= len(f) {
		return Landmark{}, false
	}
	return f[i], true
}

// Midpoint returns the point halfway between landmarks i and j. The second
// return is false unless both are present.
func (f Frame) Midpoint(i, j int) (Landmark, bool) {
	a, okA := f.At(i)
	b, okB := f.At(j)
	if !okA || !okB {
		return Landmark{}, false
	}
	return Landmark{
		X:          (a.X + b.X) / 2,
		Y:          (a.Y + b.Y) / 2,
		Z:          (a.Z + b.Z) / 2,
		Visibility: min(a.Visibility, b.Visibility),
	}, true
}
