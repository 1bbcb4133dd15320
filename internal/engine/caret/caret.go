package caret

import (
	"errors"
	"sync"
	"time"

	"github.com/quillmath/quill/internal/engine/path"
	"github.com/quillmath/quill/internal/engine/tree"
	"github.com/quillmath/quill/internal/event"
)

// ErrNoEnclosingNode is returned when an operation needs an enclosing
// node but the caret is at the document root.
var ErrNoEnclosingNode = errors.New("no enclosing node")

// Side selects where the caret lands when entering or leaving a node.
type Side uint8

const (
	// SideLeading is the start of the relevant expression.
	SideLeading Side = iota
	// SideTrailing is the end of the relevant expression.
	SideTrailing
)

// String returns the side name.
func (s Side) String() string {
	if s == SideTrailing {
		return "trailing"
	}
	return "leading"
}

// Option configures a Caret.
type Option func(*Caret)

// WithBlinkPeriod sets the blink ticker period.
func WithBlinkPeriod(d time.Duration) Option {
	return func(c *Caret) { c.blinkPeriod = d }
}

// WithQuiescentWindow sets how long input must be quiet before the blink
// phase may flip.
func WithQuiescentWindow(d time.Duration) Option {
	return func(c *Caret) { c.quiescent = d }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Caret) { c.now = now }
}

// Caret is the single editing cursor over an expression tree.
type Caret struct {
	mu       sync.Mutex
	loc      *path.Location
	position int

	// Presentation state.
	focused       bool
	blinkOn       bool
	lastInterrupt time.Time

	blinkPeriod time.Duration
	quiescent   time.Duration
	now         func() time.Time

	notifier *event.Notifier

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a caret at position 0 of the root expression and starts its
// blink ticker. Close releases the ticker.
func New(root *tree.Expression, opts ...Option) *Caret {
	c := &Caret{
		loc:         path.NewLocation(root),
		blinkPeriod: DefaultBlinkPeriod,
		quiescent:   DefaultQuiescentWindow,
		now:         time.Now,
		notifier:    event.NewNotifier(),
		blinkOn:     true,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastInterrupt = c.now()
	c.ticker = time.NewTicker(c.blinkPeriod)
	go c.blinkLoop()
	return c
}

// Close stops the blink ticker. The caret remains usable for navigation
// afterwards; only the animation stops.
func (c *Caret) Close() {
	c.closeOnce.Do(func() {
		c.ticker.Stop()
		close(c.done)
	})
}

// Root returns the document root expression.
func (c *Caret) Root() *tree.Expression { return c.loc.Root() }

// Position returns the insertion index within the enclosing expression.
func (c *Caret) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// AtRoot reports whether the caret's path is empty.
func (c *Caret) AtRoot() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc.AtRoot()
}

// Links returns a copy of the caret's path.
func (c *Caret) Links() []path.Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc.Links()
}

// Enclosing returns the expression the caret currently edits.
func (c *Caret) Enclosing() (*tree.Expression, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc.Enclosing()
}

// EnclosingNode returns the node addressed by the caret's last path link.
func (c *Caret) EnclosingNode() (*tree.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, err := c.loc.EnclosingNode()
	if errors.Is(err, path.ErrEmptyPath) {
		return nil, ErrNoEnclosingNode
	}
	return node, err
}

// OnChange registers a callback invoked after every state-affecting
// operation. Callbacks run on the goroutine performing the operation —
// for blink phase flips that is the caret's ticker goroutine — so they
// must not read or mutate the tree; hosts marshal the actual redraw onto
// their own loop.
func (c *Caret) OnChange(fn func()) (event.Subscription, error) {
	return c.notifier.Subscribe(event.TopicChange, func(event.Event) { fn() })
}

// OnFocusRequested registers a callback invoked when the caret asks the
// host to reclaim input focus.
func (c *Caret) OnFocusRequested(fn func()) (event.Subscription, error) {
	return c.notifier.Subscribe(event.TopicFocusRequest, func(event.Event) { fn() })
}

// RequestHostFocus asks the host to return input focus to the editor,
// e.g. after the insertion menu closes.
func (c *Caret) RequestHostFocus() {
	c.notifier.Publish(event.Event{Topic: event.TopicFocusRequest})
}

// EnterNode pushes a path link descending into the childIndex-th child
// expression of the node at nodeIndex, landing at its start or end
// depending on side.
func (c *Caret) EnterNode(nodeIndex, childIndex int, side Side) error {
	c.mu.Lock()
	if err := c.enterLocked(nodeIndex, childIndex, side); err != nil {
		c.mu.Unlock()
		return err
	}
	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

func (c *Caret) enterLocked(nodeIndex, childIndex int, side Side) error {
	expr, err := c.loc.Enclosing()
	if err != nil {
		return err
	}
	node, err := expr.NodeAt(nodeIndex)
	if err != nil {
		return err
	}
	child, err := node.Child(childIndex)
	if err != nil {
		return err
	}
	c.loc.MoveInto(nodeIndex, childIndex)
	if side == SideTrailing {
		c.position = child.Len()
	} else {
		c.position = 0
	}
	return nil
}

// LeaveNode pops the caret out of its enclosing node, landing immediately
// before it (leading) or after it (trailing).
func (c *Caret) LeaveNode(side Side) error {
	c.mu.Lock()
	if err := c.leaveLocked(side); err != nil {
		c.mu.Unlock()
		return err
	}
	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

func (c *Caret) leaveLocked(side Side) error {
	link, err := c.loc.Pop()
	if errors.Is(err, path.ErrEmptyPath) {
		return ErrNoEnclosingNode
	}
	if err != nil {
		return err
	}
	if side == SideTrailing {
		c.position = link.NodeIndex + 1
	} else {
		c.position = link.NodeIndex
	}
	return nil
}

// MoveRight advances the caret one step: past the next node, into it when
// it owns children, or out of the enclosing slot when at its end. No-op
// at the end of the root expression.
func (c *Caret) MoveRight() error {
	c.mu.Lock()
	expr, err := c.loc.Enclosing()
	if err != nil {
		c.mu.Unlock()
		return err
	}

	switch {
	case c.position == expr.Len():
		if c.loc.AtRoot() {
			c.mu.Unlock()
			return nil
		}
		if err := c.leaveLocked(SideTrailing); err != nil {
			c.mu.Unlock()
			return err
		}
	default:
		node, err := expr.NodeAt(c.position)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		if node.HasChildren() {
			if err := c.enterLocked(c.position, 0, SideLeading); err != nil {
				c.mu.Unlock()
				return err
			}
		} else {
			c.position++
		}
	}

	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

// MoveLeft is symmetric to MoveRight. When the node immediately before
// the caret owns children, the caret descends into its first child
// expression from the trailing side. No-op at the start of the root.
func (c *Caret) MoveLeft() error {
	c.mu.Lock()
	expr, err := c.loc.Enclosing()
	if err != nil {
		c.mu.Unlock()
		return err
	}

	switch {
	case c.position == 0:
		if c.loc.AtRoot() {
			c.mu.Unlock()
			return nil
		}
		if err := c.leaveLocked(SideLeading); err != nil {
			c.mu.Unlock()
			return err
		}
	default:
		node, err := expr.NodeAt(c.position - 1)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		if node.HasChildren() {
			if err := c.enterLocked(c.position-1, 0, SideTrailing); err != nil {
				c.mu.Unlock()
				return err
			}
		} else {
			c.position--
		}
	}

	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

// MoveDown switches to the next sibling slot of the enclosing node,
// landing at its end. No-op at the root or in the last slot.
func (c *Caret) MoveDown() error {
	return c.moveVertical(+1, SideTrailing)
}

// MoveUp switches to the previous sibling slot of the enclosing node,
// landing at its start. No-op at the root or in the first slot.
func (c *Caret) MoveUp() error {
	return c.moveVertical(-1, SideLeading)
}

func (c *Caret) moveVertical(delta int, side Side) error {
	c.mu.Lock()
	if c.loc.AtRoot() {
		c.mu.Unlock()
		return nil
	}
	link, err := c.loc.TopLevelLink()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	node, err := c.loc.EnclosingNode()
	if err != nil {
		c.mu.Unlock()
		return err
	}

	target := link.ChildIndex + delta
	if target < 0 || target >= node.ChildCount() {
		c.mu.Unlock()
		return nil
	}

	if err := c.leaveLocked(SideLeading); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.enterLocked(link.NodeIndex, target, side); err != nil {
		c.mu.Unlock()
		return err
	}

	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

// InsertSymbol inserts an atomic node displaying symbol at the caret and
// advances past it, returning the inserted index.
func (c *Caret) InsertSymbol(symbol string) (int, error) {
	return c.InsertNode(tree.NewSymbol(symbol))
}

// InsertNode inserts n into the enclosing expression at the caret and
// advances past it, returning the inserted index. Callers inserting a
// compound node typically follow up with EnterNode to descend into its
// first child slot.
func (c *Caret) InsertNode(n *tree.Node) (int, error) {
	c.mu.Lock()
	expr, err := c.loc.Enclosing()
	if err != nil {
		c.mu.Unlock()
		return 0, err
	}
	idx := c.position
	if err := expr.Insert(idx, n); err != nil {
		c.mu.Unlock()
		return 0, err
	}
	c.position++
	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return idx, nil
}

// DeleteBackward removes the node immediately before the caret. At
// position 0 it fails with tree.ErrIndexOutOfRange; callers wanting to
// delete the enclosing node use RemoveEnclosingNode instead.
func (c *Caret) DeleteBackward() error {
	c.mu.Lock()
	if c.position == 0 {
		c.mu.Unlock()
		return tree.ErrIndexOutOfRange
	}
	expr, err := c.loc.Enclosing()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if _, err := expr.RemoveAt(c.position - 1); err != nil {
		c.mu.Unlock()
		return err
	}
	c.position--
	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

// RemoveEnclosingNode leaves the enclosing node and removes it from its
// parent expression; the caret lands at the removed node's former index.
func (c *Caret) RemoveEnclosingNode() error {
	c.mu.Lock()
	if c.loc.AtRoot() {
		c.mu.Unlock()
		return ErrNoEnclosingNode
	}
	link, err := c.loc.TopLevelLink()
	if err != nil {
		c.mu.Unlock()
		return err
	}

	// Resolve the parent expression before mutating anything so a failure
	// leaves the caret untouched.
	parent := c.loc.Root()
	if c.loc.Depth() > 1 {
		_, expr, err := c.loc.Resolve(c.loc.Depth() - 1)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		parent = expr
	}
	if _, err := parent.RemoveAt(link.NodeIndex); err != nil {
		c.mu.Unlock()
		return err
	}
	if _, err := c.loc.Pop(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.position = link.NodeIndex
	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

func (c *Caret) notifyChange() {
	c.notifier.Publish(event.Event{Topic: event.TopicChange})
}
