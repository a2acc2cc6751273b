package store

import (
	"fmt"

	"github.com/dotkaio/wstudio/css"
	"github.com/google/uuid"
)

// ID identifies an instance.
type ID string

// NewID creates a fresh random instance ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Instance is a read-only snapshot of an instance's tree position.
type Instance struct {
	ID       ID
	Parent   ID // empty for root instances
	Tag      string
	Classes  []string
	Children []ID
}

// node is the building block of the instance tree. Each node carries the
// declared values of an instance for the remote and local tiers.
type node struct {
	id       ID
	tag      string
	classes  []string
	parent   *node
	children []*node
	decls    [2]map[string]css.Value // remote, local
}

func newNode(id ID, tag string, classes []string) *node {
	n := &node{id: id, tag: tag}
	if len(classes) > 0 {
		n.classes = append([]string(nil), classes...)
	}
	n.decls[0] = make(map[string]css.Value)
	n.decls[1] = make(map[string]css.Value)
	return n
}

func (n *node) String() string {
	return fmt.Sprintf("(Instance %s <%s> #ch=%d)", n.id, n.tag, len(n.children))
}

// addChild appends ch to the children of n and links n as parent of ch.
func (n *node) addChild(ch *node) {
	n.children = append(n.children, ch)
	ch.parent = n
}

// tierMap returns the declarations map of a persistent tier.
func (n *node) tierMap(tier Tier) map[string]css.Value {
	switch tier {
	case TierRemote:
		return n.decls[0]
	case TierLocal:
		return n.decls[1]
	}
	return nil
}

func (n *node) snapshot() Instance {
	inst := Instance{ID: n.id, Tag: n.tag}
	if n.parent != nil {
		inst.Parent = n.parent.id
	}
	if len(n.classes) > 0 {
		inst.Classes = append([]string(nil), n.classes...)
	}
	if len(n.children) > 0 {
		inst.Children = make([]ID, len(n.children))
		for i, ch := range n.children {
			inst.Children[i] = ch.id
		}
	}
	return inst
}
