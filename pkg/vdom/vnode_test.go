package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateElement(t *testing.T) {
	node := Li(
		Key("t1"),
		Data("index", 0),
		Class("toast", "", "rich"),
		nil,
		"hello",
		Span(Text("world")),
		[]*VNode{Text("a"), nil, Text("b")},
	)

	if node.Tag != "li" {
		t.Errorf("Tag = %q, want li", node.Tag)
	}
	if node.Key != "t1" {
		t.Errorf("Key = %q, want t1", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
	if got := node.Attr("data-index"); got != 0 {
		t.Errorf("data-index = %v, want 0", got)
	}
	if got := node.Attr("class"); got != "toast rich" {
		t.Errorf("class = %v, want %q", got, "toast rich")
	}
	if len(node.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(node.Children))
	}
	if got := node.TextContent(); got != "helloworldab" {
		t.Errorf("TextContent() = %q", got)
	}
}

func TestClassEmpty(t *testing.T) {
	if a := Class("", ""); !a.IsEmpty() {
		t.Errorf("Class of empty strings = %+v, want empty attr", a)
	}
}

func TestStyleOrder(t *testing.T) {
	a := Style(map[string]string{"--z-index": "3", "--index": "0", "--offset": "0px"})
	want := "--index: 0; --offset: 0px; --z-index: 3;"
	if a.Value != want {
		t.Errorf("Style = %q, want %q", a.Value, want)
	}
	if !Style(nil).IsEmpty() {
		t.Error("Style(nil) should be empty")
	}
}

func TestFind(t *testing.T) {
	tree := Section(
		Ol(Data("y-position", "bottom"),
			Li(Data("id", "1")),
			Li(Data("id", "2")),
		),
	)

	li := tree.Find(func(n *VNode) bool { return n.Attr("data-id") == "2" })
	if li == nil || li.Tag != "li" {
		t.Fatalf("Find returned %+v", li)
	}
	all := tree.FindAll(func(n *VNode) bool { return n.Tag == "li" })
	if len(all) != 2 {
		t.Errorf("FindAll = %d nodes, want 2", len(all))
	}
	if (*VNode)(nil).Find(func(*VNode) bool { return true }) != nil {
		t.Error("Find on nil should return nil")
	}
}

func TestFragmentAndIf(t *testing.T) {
	f := Fragment(Text("a"), nil, "b", If(false, Text("c")))
	if f.Kind != KindFragment || len(f.Children) != 2 {
		t.Errorf("Fragment children = %d, want 2", len(f.Children))
	}
	if If(true, Text("x")) == nil {
		t.Error("If(true) returned nil")
	}
	nodes := Range([]string{"a", "b"}, func(s string, i int) *VNode { return Textf("%d%s", i, s) })
	if len(nodes) != 2 || nodes[1].Text != "1b" {
		t.Errorf("Range = %+v", nodes)
	}
}
