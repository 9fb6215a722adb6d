// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forcegraph

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"github.com/gravitree/forcegraph/graph"
	"github.com/gravitree/forcegraph/interact"
	"github.com/gravitree/forcegraph/layout"
	"github.com/gravitree/forcegraph/scene"
	"github.com/gravitree/forcegraph/share"
)

// Options are the create-time settings of an [Entity] that are not
// part of the host-updatable [Config].
type Options struct {

	// Seed fixes the initial node placement jitter, making layouts
	// reproducible for a given document.
	Seed int64

	// Transport connects the shared-state bridge to its peers. Nil
	// stays local. Ignored unless [Config.IsNetworked] is set.
	Transport share.Transport

	// DragRotate converts pointer drag units to radians of graph
	// rotation.
	DragRotate float32 `default:"0.01"`

	// FetchTimeout bounds each document fetch.
	FetchTimeout time.Duration `default:"10s"`
}

func (op *Options) Defaults() {
	if op.DragRotate == 0 {
		op.DragRotate = 0.01
	}
	if op.FetchTimeout == 0 {
		op.FetchTimeout = 10 * time.Second
	}
}

// FrameInput is the per-frame host state passed to [Entity.Tick].
type FrameInput struct {

	// Viewer is the viewer's current world orientation. The zero
	// quat is treated as identity.
	Viewer math32.Quat

	// Container is the world matrix of the scene element hosting
	// the entity root, nil when the root sits at the origin.
	Container *math32.Matrix4

	// Pointers are the active pointer rays in scene space. At most
	// [interact.MaxPointers] are polled for hover.
	Pointers []math32.Ray
}

// HoverTarget is one hovered scene element resolved to its graph
// owner. Exactly one of Node and Link is non-nil.
type HoverTarget struct {
	Node *graph.Node
	Link *graph.Link
}

// Entity is a live force-directed graph: a scene subtree whose node
// and link poses are driven by a layout simulation, advanced one
// cooperative frame at a time by [Entity.Tick]. All methods must be
// called from the frame loop goroutine.
type Entity struct {

	// Config is the current configuration. Change it through
	// [Entity.Update], not by direct mutation.
	Config Config

	// OnNodeClick and OnLinkClick are called when a click resolves
	// to a node or link.
	OnNodeClick func(gn *graph.Node)
	OnLinkClick func(lk *graph.Link)

	// OnHoverChange is called when the set of hovered elements
	// changes, with the new set (possibly empty).
	OnHoverChange func(targets []HoverTarget)

	opts    Options
	root    *scene.Group
	content *scene.Group
	nodes   *scene.Group
	links   *scene.Group

	gr      *graph.Graph
	sim     *layout.Simulation
	fitter  *layout.Fitter
	factory *ContentFactory
	ctrl    *interact.Controller
	bridge  *share.Bridge
	deb     *share.Debouncer

	views  map[*graph.Node]*scene.Group
	owners map[scene.Node]*graph.Node
	segs   map[*graph.Link]*scene.Segment
	linkOf map[scene.Node]*graph.Link

	events      []pointerEvent
	hovers      []HoverTarget
	pendingDrag math32.Vector2
	yaw, pitch  float32
	fitPending  bool
	bb          scene.BillboardScratch
}

// New creates an entity from the given config, fetching and building
// its graph document. A failed fetch or an invalid document is not
// fatal: the entity comes up with an empty graph and a logged
// diagnostic. The returned root (see [Entity.Root]) is ready to be
// parented into the host scene.
func New(cf *Config, opts *Options) *Entity {
	conf := Config{}
	if cf != nil {
		conf = *cf
	}
	conf.Defaults()
	op := Options{}
	if opts != nil {
		op = *opts
	}
	op.Defaults()

	en := &Entity{Config: conf, opts: op}
	en.root = scene.NewGroup()
	en.root.Name = conf.Name
	if en.root.Name == "" {
		en.root.Name = "forcegraph"
	}
	en.content = scene.NewGroup(en.root)
	en.content.Name = "content"
	en.nodes = scene.NewGroup(en.content)
	en.nodes.Name = "nodes"
	en.links = scene.NewGroup(en.content)
	en.links.Name = "links"

	en.factory = NewContentFactory()
	en.factory.TextSize = conf.TextSize
	en.fitter = layout.NewFitter(conf.Width, conf.Height)
	en.ctrl = interact.NewController(en.root)
	en.ctrl.Draggable = conf.IsDraggable
	var tp share.Transport
	if conf.IsNetworked {
		tp = op.Transport
	}
	en.bridge = share.NewBridge(tp)
	en.deb = share.NewDebouncer(orientationInterval)
	en.deb.Eq = orientationEq

	en.rebuild()
	scene.UpdateWorldMatrices(en.root, math32.Identity4())
	return en
}

// Root returns the scene root of the entity, for the host to parent.
func (en *Entity) Root() *scene.Group {
	return en.root
}

// Graph returns the current graph, never nil after New.
func (en *Entity) Graph() *graph.Graph {
	return en.gr
}

// Simulation returns the layout simulation driving the node poses.
func (en *Entity) Simulation() *layout.Simulation {
	return en.sim
}

// Bridge returns the shared-state bridge.
func (en *Entity) Bridge() *share.Bridge {
	return en.bridge
}

// Orientation returns the current graph rotation in radians.
func (en *Entity) Orientation() (yaw, pitch float32) {
	return en.yaw, en.pitch
}

// SetOrientation rotates the graph root directly, as if by drag.
func (en *Entity) SetOrientation(yaw, pitch float32) {
	en.yaw, en.pitch = yaw, pitch
	en.applyOrientation()
	en.shareOrientation(false)
}

// Update applies a changed config, taking the cheapest sufficient
// action: shape changes rebuild the graph and scene content, force
// changes retune the running simulation in place, and size changes
// refit the existing layout.
func (en *Entity) Update(cf *Config) {
	nw := Config{}
	if cf != nil {
		nw = *cf
	}
	nw.Defaults()
	df := en.Config.Diff(&nw)
	en.Config = nw
	en.ctrl.Draggable = nw.IsDraggable
	if df.Rebuild {
		en.factory.TextSize = nw.TextSize
		en.rebuild()
		return
	}
	if df.Forces {
		en.applyForces()
		en.sim.Reheat()
	}
	if df.Fit {
		en.fitter.Width = nw.Width
		en.fitter.Height = nw.Height
		en.fitPending = true
	}
}

// Destroy tears the entity down. In-flight content builds are not
// cancelled; their completions notice the dead tree and drop out.
func (en *Entity) Destroy() {
	en.factory.Reset()
	errors.Log(en.bridge.Close())
	en.root.Destroy()
}

// rebuild refetches the document and rebuilds graph and scene. An
// invalid document (for example a link naming a missing node) keeps
// the previous graph; at create time it leaves the graph empty.
func (en *Entity) rebuild() {
	doc := en.fetch()
	gr, err := graph.Build(doc, en.Config.BuildOptions())
	if err != nil {
		slog.Error("forcegraph: invalid graph document",
			"name", en.Config.Name, "url", en.Config.DocumentURL, "err", err)
		if en.gr != nil {
			return
		}
		gr = &graph.Graph{}
	}
	en.install(gr)
}

// fetch pulls the configured document, returning an empty one on any
// failure so the entity stays alive.
func (en *Entity) fetch() *graph.Document {
	if en.Config.DocumentURL == "" {
		return &graph.Document{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), en.opts.FetchTimeout)
	defer cancel()
	doc, err := graph.Fetch(ctx, en.Config.DocumentURL)
	if err != nil {
		slog.Error("forcegraph: document fetch failed",
			"name", en.Config.Name, "url", en.Config.DocumentURL, "err", err)
		return &graph.Document{}
	}
	return doc
}

// install swaps in a new graph: old content out, one container per
// node and one segment per link in, fresh simulation seeded and
// heated.
func (en *Entity) install(gr *graph.Graph) {
	en.factory.Reset()
	en.nodes.DeleteChildren()
	en.links.DeleteChildren()
	en.fitter.Reset()
	en.fitter.Width = en.Config.Width
	en.fitter.Height = en.Config.Height
	en.fitPending = false

	en.gr = gr
	en.views = make(map[*graph.Node]*scene.Group, len(gr.Nodes))
	en.owners = make(map[scene.Node]*graph.Node, len(gr.Nodes))
	en.segs = make(map[*graph.Link]*scene.Segment, len(gr.Links))
	en.linkOf = make(map[scene.Node]*graph.Link, len(gr.Links))

	for _, gn := range gr.Nodes {
		ct := en.factory.Build(gn, en.nodes)
		en.views[gn] = ct
		en.owners[ct] = gn
	}
	for _, lk := range gr.Links {
		sg := scene.NewSegment(en.links)
		sg.Name = lk.Source.ID + "-" + lk.Target.ID
		sg.Width = lk.Width
		sg.Invisible = !lk.Visible
		sg.SetColor(lk.Color).SetOpacity(lk.Opacity)
		en.segs[lk] = sg
		en.linkOf[sg] = lk
	}

	en.sim = layout.NewSimulation(gr)
	en.sim.OnConverged = func() { en.fitPending = true }
	en.applyForces()
	en.sim.Init(en.opts.Seed)
	for gn, ct := range en.views {
		ct.Pose.Pos = gn.Pos
	}
	en.syncSegments()
}

// applyForces pushes the config force strengths into the simulation.
func (en *Entity) applyForces() {
	en.sim.SetForce(layout.Charge, en.Config.ChargeForce)
	en.sim.SetForce(layout.CenterX, en.Config.XForce)
	en.sim.SetForce(layout.CenterY, en.Config.YForce)
	en.sim.SetForce(layout.CenterZ, en.Config.ZForce)
}

// Tick advances one frame. The order is fixed: input, shared state,
// physics, billboards, content, transforms, fit.
func (en *Entity) Tick(dt float32, frame *FrameInput) {
	if en.root.This == nil {
		return
	}
	if frame == nil {
		frame = &FrameInput{}
	}

	wasDragging := en.ctrl.Phase() == interact.Dragging
	en.drainEvents()
	if en.Config.IsInteractive {
		en.ctrl.Poll(frame.Pointers)
		en.updateHovers()
	}
	d := en.ctrl.TakeFrameDelta().Add(en.pendingDrag)
	en.pendingDrag = math32.Vector2{}
	if d.X != 0 || d.Y != 0 {
		en.yaw += d.X * en.opts.DragRotate
		en.pitch += d.Y * en.opts.DragRotate
		en.applyOrientation()
		en.shareOrientation(false)
	}
	if wasDragging && en.ctrl.Phase() != interact.Dragging {
		en.shareOrientation(true)
	}

	if en.bridge.Changed() {
		rec := en.bridge.Shared()
		en.bridge.ClearChanged()
		var o orientation
		if err := json.Unmarshal(rec, &o); err != nil {
			slog.Warn("forcegraph: undecodable shared record", "err", err)
		} else {
			en.yaw, en.pitch = o.Yaw, o.Pitch
			en.applyOrientation()
		}
	}

	en.sim.Step(dt)
	for gn, ct := range en.views {
		ct.Pose.Pos = gn.Pos
	}
	en.syncSegments()

	viewer := frame.Viewer
	if viewer.IsNil() {
		viewer.SetIdentity()
	}
	bq := scene.BillboardQuat(en.root.Pose.WorldQuat(), viewer, &en.bb)
	for _, ct := range en.views {
		ct.Pose.Quat = bq
	}

	en.factory.Tick(dt)

	par := frame.Container
	if par == nil {
		par = math32.Identity4()
	}
	scene.UpdateWorldMatrices(en.root, par)

	if en.fitPending && en.ctrl.Phase() != interact.Dragging {
		en.fit()
	}
}

// fit measures the content extent in its own unscaled space and
// applies the resulting absolute scale to the root. Measuring runs a
// world-matrix pass against identity, so the regular pass is rerun
// afterward to restore the true chain.
func (en *Entity) fit() {
	scene.UpdateWorldMatrices(en.content, math32.Identity4())
	s, ok := en.fitter.Fit(en.content.WorldBBox)
	if ok {
		en.root.Pose.Scale.SetScalar(s)
	}
	scene.UpdateWorldMatrices(en.root, nil)
	en.fitPending = false
}

func (en *Entity) syncSegments() {
	for lk, sg := range en.segs {
		sg.SetEndpoints(lk.Source.Pos, lk.Target.Pos)
	}
}

func (en *Entity) applyOrientation() {
	en.root.Pose.Quat.SetFromEuler(math32.Vec3(en.pitch, en.yaw, 0))
}

// resolve climbs from a hit solid to the graph element owning it.
func (en *Entity) resolve(hp *scene.HitPoint) (*graph.Node, *graph.Link) {
	if hp == nil {
		return nil, nil
	}
	var cur tree.Node = hp.Node
	for cur != nil {
		if sn, _ := scene.AsNode(cur); sn != nil {
			if lk, ok := en.linkOf[sn]; ok {
				return nil, lk
			}
			if gn, ok := en.owners[sn]; ok {
				return gn, nil
			}
		}
		cur = cur.AsTree().Parent
	}
	return nil, nil
}

// updateHovers resolves the polled hover set and fires OnHoverChange
// when it differs from the previous frame.
func (en *Entity) updateHovers() {
	if en.OnHoverChange == nil {
		return
	}
	var next []HoverTarget
	for _, hv := range en.ctrl.Hovers() {
		gn, lk := en.resolve(hv.Hit)
		if gn != nil || lk != nil {
			next = append(next, HoverTarget{Node: gn, Link: lk})
		}
	}
	if !slices.Equal(next, en.hovers) {
		en.hovers = next
		en.OnHoverChange(next)
	}
}
