package placement

import "errors"

var (
	ErrUnknownPlacement = errors.New("unknown placement")
	ErrSlotOutOfRange   = errors.New("slot index out of range")
)

// Placement is a named advertising location on the public directory pages.
type Placement string

const (
	// HomeTop has two ordered slots rendered left and right above the fold.
	HomeTop Placement = "home_top"
	// HomeRight has three ordered slots in the right-hand sidebar.
	HomeRight Placement = "home_right"
)

var slotCounts = map[Placement]int{
	HomeTop:   2,
	HomeRight: 3,
}

var homeTopLabels = []string{"left", "right"}

func New(value string) (Placement, error) {
	p := Placement(value)
	if !p.IsValid() {
		return "", ErrUnknownPlacement
	}
	return p, nil
}

func (p Placement) String() string {
	return string(p)
}

func (p Placement) IsValid() bool {
	_, ok := slotCounts[p]
	return ok
}

func (p Placement) SlotCount() int {
	return slotCounts[p]
}

// SlotIndexes returns the ordered slot indexes of the placement, lowest
// first. Auto-assignment tie-breaks rely on this ordering.
func (p Placement) SlotIndexes() []int {
	n := slotCounts[p]
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	return idxs
}

func (p Placement) ValidateSlot(slotIndex int) error {
	if !p.IsValid() {
		return ErrUnknownPlacement
	}
	if slotIndex < 0 || slotIndex >= slotCounts[p] {
		return ErrSlotOutOfRange
	}
	return nil
}

// SlotLabel returns the display label for a slot, used by the home-page
// renderer. Indexes outside the placement fall back to an empty label.
func (p Placement) SlotLabel(slotIndex int) string {
	if p == HomeTop && slotIndex >= 0 && slotIndex < len(homeTopLabels) {
		return homeTopLabels[slotIndex]
	}
	return ""
}

func All() []Placement {
	return []Placement{HomeTop, HomeRight}
}
