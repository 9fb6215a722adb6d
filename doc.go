// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package forcegraph is an interactive, physically simulated 3D graph
component: it loads a node-link document, lays it out with a
force-directed simulation, and maintains a live scene subtree that a
host renderer draws and feeds with frames and pointer events.

The host owns the render loop and calls [Entity.Tick] once per frame
with the elapsed time and a [FrameInput]. Everything the entity does
happens inside that call, in a fixed order: pointer events, shared
state, one simulation step, billboard orientation, content builds,
world transforms, and finally fitting the converged layout into the
configured extents. The only background work is assembling rich node
content, which is handed back to the frame loop before it touches the
scene.

Subpackages divide the work: graph loads and models the node-link
data, layout runs the force simulation and the bounds fitter, scene
is the minimal composite 3D tree, interact turns pointer rays into
hover, click, and drag state, and share synchronizes the view
orientation between peers over a websocket hub.

Basic use:

	cf := forcegraph.NewConfig()
	cf.DocumentURL = "miserables.json"
	cf.IsInteractive = true
	en := forcegraph.New(cf, nil)
	host.Attach(en.Root())
	// each frame:
	en.Tick(dt, &forcegraph.FrameInput{Viewer: cam.Quat})
*/
package forcegraph
