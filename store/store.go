package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dotkaio/wstudio/css"
)

// Op is a single pending modification of a property.
// If Delete is set, Value is ignored.
type Op struct {
	Property string
	Value    css.Value
	Delete   bool
}

func (op Op) String() string {
	if op.Delete {
		return "delete " + op.Property
	}
	return "set " + op.Property + ": " + css.ToValue(op.Value)
}

// Change is the notification sent to subscribers after an applied batch
// or a reset of the ephemeral overlay.
type Change struct {
	Version    uint64
	Tier       Tier
	Instances  []ID
	Properties []string // touched properties, in order of first occurrence
}

// Listener is a subscriber function for change notifications.
type Listener func(Change)

// Option configures a store at creation time.
type Option func(*Store)

// WithListener subscribes a listener right at creation time.
func WithListener(l Listener) Option {
	return func(s *Store) {
		s.subscribe(l)
	}
}

// Reader gives read access to the declarations of a store.
type Reader interface {
	// Get returns the value declared for an instance's property in a tier.
	// For TierEphemeral, a preview deletion is reported as (nil, true).
	Get(id ID, property string, tier Tier) (css.Value, bool)
	// Instance returns a snapshot of an instance's tree position.
	Instance(id ID) (Instance, bool)
	// Properties returns the sorted names of properties declared for an
	// instance in a tier.
	Properties(id ID, tier Tier) []string
	// Roots returns the IDs of all root instances.
	Roots() []ID
}

type overlayKey struct {
	id       ID
	property string
}

// Store holds the instance tree and all declared values.
// A Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	nodes     map[ID]*node
	roots     []*node
	overlay   map[overlayKey]css.Value // nil value is a preview deletion
	version   uint64
	lmu       sync.Mutex
	listeners map[int]Listener
	nextL     int
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		nodes:     make(map[ID]*node),
		overlay:   make(map[overlayKey]css.Value),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddInstance creates a new instance as the last child of parent. An empty
// parent creates a root instance. tag is the HTML element name of the
// instance, classes are used for matching preset selectors.
func (s *Store) AddInstance(parent ID, tag string, classes ...string) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := NewID()
	n := newNode(id, tag, classes)
	if parent == "" {
		s.roots = append(s.roots, n)
	} else {
		p, ok := s.nodes[parent]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownInstance, parent)
		}
		p.addChild(n)
	}
	s.nodes[id] = n
	tracer().Debugf("added instance %v", n)
	return id, nil
}

// Roots returns the IDs of all root instances.
func (s *Store) Roots() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s}.Roots()
}

// Version returns the number of changes applied to the store so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get is part of interface Reader.
func (s *Store) Get(id ID, property string, tier Tier) (css.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s}.Get(id, property, tier)
}

// Instance is part of interface Reader.
func (s *Store) Instance(id ID) (Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s}.Instance(id)
}

// Properties is part of interface Reader.
func (s *Store) Properties(id ID, tier Tier) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view{s}.Properties(id, tier)
}

// View calls fn with a Reader on a consistent state of the store. No batch
// is applied while fn is running. fn must not modify the store.
func (s *Store) View(fn func(Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(view{s})
}

// view reads without locking; the caller holds the store's lock.
type view struct {
	s *Store
}

func (v view) Get(id ID, property string, tier Tier) (css.Value, bool) {
	if tier == TierEphemeral {
		val, ok := v.s.overlay[overlayKey{id, property}]
		return val, ok
	}
	n, ok := v.s.nodes[id]
	if !ok {
		return nil, false
	}
	m := n.tierMap(tier)
	if m == nil {
		return nil, false
	}
	val, ok := m[property]
	return val, ok
}

func (v view) Roots() []ID {
	ids := make([]ID, len(v.s.roots))
	for i, r := range v.s.roots {
		ids[i] = r.id
	}
	return ids
}

func (v view) Instance(id ID) (Instance, bool) {
	n, ok := v.s.nodes[id]
	if !ok {
		return Instance{}, false
	}
	return n.snapshot(), true
}

func (v view) Properties(id ID, tier Tier) []string {
	var names []string
	if tier == TierEphemeral {
		for k := range v.s.overlay {
			if k.id == id {
				names = append(names, k.property)
			}
		}
	} else if n, ok := v.s.nodes[id]; ok {
		for p := range n.tierMap(tier) {
			names = append(names, p)
		}
	}
	sort.Strings(names)
	return names
}

// --- Modification ----------------------------------------------------------

// ApplyBatch applies ops, in order, to every target instance in a tier.
// Either all operations are applied or, if a target is unknown or the tier
// is not writable, none. An empty list of operations is a no-op and does
// not notify subscribers.
//
// Applying to TierLocal discards preview values of the touched properties
// from the ephemeral overlay. Applying to TierEphemeral writes the overlay
// only; a delete operation is recorded as a preview deletion.
func (s *Store) ApplyBatch(targets []ID, tier Tier, ops []Op) error {
	if len(ops) == 0 || len(targets) == 0 {
		return nil
	}
	perInstance := make(map[ID][]Op, len(targets))
	for _, id := range targets {
		perInstance[id] = ops
	}
	return s.apply(targets, tier, perInstance)
}

// ApplyEach applies individual operations per instance, all of them in a
// single step. Subscribers are notified once. Apart from that, ApplyEach
// behaves like ApplyBatch.
func (s *Store) ApplyEach(tier Tier, ops map[ID][]Op) error {
	targets := make([]ID, 0, len(ops))
	for id, o := range ops {
		if len(o) > 0 {
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return s.apply(targets, tier, ops)
}

func (s *Store) apply(targets []ID, tier Tier, ops map[ID][]Op) error {
	if tier == TierDefault || tier > TierEphemeral {
		return fmt.Errorf("%w: %s", ErrTier, tier)
	}
	s.mu.Lock()
	for _, id := range targets {
		if _, ok := s.nodes[id]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUnknownInstance, id)
		}
	}
	var all []Op
	for _, id := range targets {
		n := s.nodes[id]
		for _, op := range ops[id] {
			key := overlayKey{id, op.Property}
			if tier == TierEphemeral {
				if op.Delete {
					s.overlay[key] = nil
				} else {
					s.overlay[key] = op.Value
				}
				continue
			}
			if op.Delete {
				delete(n.tierMap(tier), op.Property)
			} else {
				n.tierMap(tier)[op.Property] = op.Value
			}
			if tier == TierLocal {
				delete(s.overlay, key)
			}
		}
		all = append(all, ops[id]...)
	}
	s.version++
	change := Change{
		Version:    s.version,
		Tier:       tier,
		Instances:  append([]ID(nil), targets...),
		Properties: touched(all),
	}
	s.mu.Unlock()
	tracer().P("tier", tier).Debugf("applied %d operations to %d instances, version %d",
		len(all), len(targets), change.Version)
	s.notify(change)
	return nil
}

// ResetEphemeral discards all preview values. Subscribers are notified
// only if the overlay was not empty.
func (s *Store) ResetEphemeral() {
	s.mu.Lock()
	if len(s.overlay) == 0 {
		s.mu.Unlock()
		return
	}
	ids := make([]ID, 0)
	props := make([]string, 0)
	seenID, seenProp := make(map[ID]bool), make(map[string]bool)
	for k := range s.overlay {
		if !seenID[k.id] {
			seenID[k.id] = true
			ids = append(ids, k.id)
		}
		if !seenProp[k.property] {
			seenProp[k.property] = true
			props = append(props, k.property)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	sort.Strings(props)
	s.overlay = make(map[overlayKey]css.Value)
	s.version++
	change := Change{Version: s.version, Tier: TierEphemeral, Instances: ids, Properties: props}
	s.mu.Unlock()
	tracer().Debugf("reset ephemeral overlay, version %d", change.Version)
	s.notify(change)
}

func touched(ops []Op) []string {
	seen := make(map[string]bool, len(ops))
	props := make([]string, 0, len(ops))
	for _, op := range ops {
		if !seen[op.Property] {
			seen[op.Property] = true
			props = append(props, op.Property)
		}
	}
	return props
}

// --- Notification ----------------------------------------------------------

// Subscribe registers a listener for change notifications. Listeners are
// called synchronously, after the change is visible to readers. The returned
// function unsubscribes the listener.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	key := s.subscribe(l)
	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, key)
	}
}

func (s *Store) subscribe(l Listener) int {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	key := s.nextL
	s.nextL++
	s.listeners[key] = l
	return key
}

func (s *Store) notify(change Change) {
	s.lmu.Lock()
	keys := make([]int, 0, len(s.listeners))
	for k := range s.listeners {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ls := make([]Listener, len(keys))
	for i, k := range keys {
		ls[i] = s.listeners[k]
	}
	s.lmu.Unlock()
	for _, l := range ls {
		l(change)
	}
}
