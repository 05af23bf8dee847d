package ui

import "sync"

const (
	displayOpen    = "flex"
	displayClosed  = "none"
	overflowLocked = "hidden"
	overflowFree   = "auto"
)

// ModalSet tracks which modals of a page are open.
type ModalSet struct {
	mu   sync.Mutex
	open map[string]bool
}

// NewModalSet builds a set with the named modals open.
func NewModalSet(open ...string) *ModalSet {
	s := &ModalSet{open: make(map[string]bool)}
	for _, id := range open {
		if id != "" {
			s.open[id] = true
		}
	}
	return s
}

// Open shows a modal and locks page scrolling.
func (s *ModalSet) Open(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[id] = true
}

// Close hides a modal.
func (s *ModalSet) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, id)
}

// BackdropClick closes the modal whose backdrop was clicked.
func (s *ModalSet) BackdropClick(id string) {
	s.Close(id)
}

// IsOpen reports whether a modal is shown.
func (s *ModalSet) IsOpen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[id]
}

// Display is the CSS display value of a modal.
func (s *ModalSet) Display(id string) string {
	if s.IsOpen(id) {
		return displayOpen
	}
	return displayClosed
}

// BodyOverflow is "hidden" while any modal is open and "auto" otherwise.
func (s *ModalSet) BodyOverflow() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.open) > 0 {
		return overflowLocked
	}
	return overflowFree
}
