package toast

import "github.com/vango-dev/toaster/pkg/vdom"

// Show displays a toast. Its category is default unless an option says
// otherwise. If opts carry the id of an existing toast, that toast is
// updated instead.
func (s *Store) Show(title Content, opts ...Option) ID {
	return s.create(title, "", opts)
}

// Message is an alias of Show.
func (s *Store) Message(title Content, opts ...Option) ID {
	return s.create(title, "", opts)
}

// Success shows a success toast.
func (s *Store) Success(title Content, opts ...Option) ID {
	return s.create(title, CategorySuccess, opts)
}

// Error shows an error toast.
func (s *Store) Error(title Content, opts ...Option) ID {
	return s.create(title, CategoryError, opts)
}

// Warning shows a warning toast.
func (s *Store) Warning(title Content, opts ...Option) ID {
	return s.create(title, CategoryWarning, opts)
}

// Info shows an info toast.
func (s *Store) Info(title Content, opts ...Option) ID {
	return s.create(title, CategoryInfo, opts)
}

// Loading shows a loading toast. Loading toasts do not auto-close and
// cannot be swiped away.
func (s *Store) Loading(title Content, opts ...Option) ID {
	return s.create(title, CategoryLoading, opts)
}

// Custom shows a toast whose whole body is node.
func (s *Store) Custom(node *vdom.VNode, opts ...Option) ID {
	return s.create(Node(node), CategoryCustom, opts)
}
