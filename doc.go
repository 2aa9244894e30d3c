// Package frameshow is a keyframe animation engine for frame-by-frame math
// presentations on top of [Ebitengine].
//
// A [Scene] holds drawable [Object]s, a [Camera] and a [Pen]. Every object
// and the camera carry a sparse [PropertyStore]: one [Snapshot] per frame
// where something changed. Moving between frames interpolates each snapshot
// towards the target frame with a logistic ease, so a presentation is just a
// list of frames and the animation between them comes for free.
//
// # Quick start
//
// The player package opens a window and handles input for you. Object
// positions are screen pixels; the camera only projects the axes and grid.
//
//	scene := frameshow.NewScene(frameshow.DefaultSceneConfig())
//	dot := scene.Add(frameshow.NewCircle(frameshow.ColorBlack, frameshow.Vec2{X: 760, Y: 540}))
//	scene.AppendFrame()
//	dot.Properties.Update(2, func(s *frameshow.Snapshot) { s.P.X = 1160 })
//	player.Run(scene, player.Config{Title: "demo"})
//
// For full control, call [Scene.Update] once per tick and [Scene.Draw] with
// any [Surface] implementation.
//
// # Frames
//
// Frames are numbered from 1. [Scene.Next] and [Scene.Prev] wrap around,
// [Scene.GoTo] animates while presenting and cuts otherwise, and
// [Scene.InsertFrame] shifts every later keyframe by one. Values that cannot
// be interpolated, such as text or paths of different length, switch over
// halfway through the transition.
//
// # Camera
//
// The camera projects graph coordinates to the screen with a 3D rotation
// R = Rx·Ry·Rz followed by scale and pan. Its own snapshot is keyframed
// like any object, so rotations and zooms animate between frames.
//
// # Persistence
//
// [Scene.MarshalJSON] and [Scene.Load] round-trip a whole document.
// [History] keeps undo snapshots in that format. The store subpackages
// persist named pages in badger or SQLite.
//
// [Ebitengine]: https://ebitengine.org
package frameshow
