package assets

import (
	"fmt"

	"github.com/vango-dev/toaster/pkg/vdom"
)

const loaderBars = 12

// Loader returns the spinner shown for loading toasts. Hidden loaders stay
// in the tree so the icon slot does not jump when a promise settles.
func Loader(visible bool, class string) *vdom.VNode {
	bars := make([]*vdom.VNode, loaderBars)
	for i := range bars {
		bars[i] = vdom.Div(vdom.Class("sonner-loading-bar"), vdom.A("key", fmt.Sprintf("spinner-bar-%d", i)))
	}
	return vdom.Div(
		vdom.Class("sonner-loading-wrapper", class),
		vdom.Data("visible", visible),
		vdom.Div(vdom.Class("sonner-spinner"), bars),
	)
}

// CloseIcon is the glyph of the close button.
func CloseIcon() *vdom.VNode {
	return vdom.Svg(
		vdom.A("xmlns", "http://www.w3.org/2000/svg"),
		vdom.A("width", "12"),
		vdom.A("height", "12"),
		vdom.A("viewBox", "0 0 24 24"),
		vdom.A("fill", "none"),
		vdom.A("stroke", "currentColor"),
		vdom.A("stroke-width", "1.5"),
		vdom.A("stroke-linecap", "round"),
		vdom.A("stroke-linejoin", "round"),
		vdom.Line(vdom.A("x1", "18"), vdom.A("y1", "6"), vdom.A("x2", "6"), vdom.A("y2", "18")),
		vdom.Line(vdom.A("x1", "6"), vdom.A("y1", "6"), vdom.A("x2", "18"), vdom.A("y2", "18")),
	)
}

func filledIcon(viewBox, d string) *vdom.VNode {
	return vdom.Svg(
		vdom.A("xmlns", "http://www.w3.org/2000/svg"),
		vdom.A("viewBox", viewBox),
		vdom.A("fill", "currentColor"),
		vdom.A("height", "20"),
		vdom.A("width", "20"),
		vdom.Path(
			vdom.A("fill-rule", "evenodd"),
			vdom.A("clip-rule", "evenodd"),
			vdom.A("d", d),
		),
	)
}

func successIcon() *vdom.VNode {
	return filledIcon("0 0 20 20",
		"M10 18a8 8 0 100-16 8 8 0 000 16zm3.857-9.809a.75.75 0 00-1.214-.882l-3.483 4.79-1.88-1.88a.75.75 0 10-1.06 1.061l2.5 2.5a.75.75 0 001.137-.089l4-5.5z")
}

func warningIcon() *vdom.VNode {
	return filledIcon("0 0 24 24",
		"M9.401 3.003c1.155-2 4.043-2 5.197 0l7.355 12.748c1.154 2-.29 4.5-2.599 4.5H4.645c-2.309 0-3.752-2.5-2.598-4.5L9.4 3.003zM12 8.25a.75.75 0 01.75.75v3.75a.75.75 0 01-1.5 0V9a.75.75 0 01.75-.75zm0 8.25a.75.75 0 100-1.5.75.75 0 000 1.5z")
}

func infoIcon() *vdom.VNode {
	return filledIcon("0 0 20 20",
		"M18 10a8 8 0 11-16 0 8 8 0 0116 0zm-7-4a1 1 0 11-2 0 1 1 0 012 0zM9 9a.75.75 0 000 1.5h.253a.25.25 0 01.244.304l-.459 2.066A1.75 1.75 0 0010.747 15H11a.75.75 0 000-1.5h-.253a.25.25 0 01-.244-.304l.459-2.066A1.75 1.75 0 009.253 9H9z")
}

func errorIcon() *vdom.VNode {
	return filledIcon("0 0 20 20",
		"M18 10a8 8 0 11-16 0 8 8 0 0116 0zm-8-5a.75.75 0 01.75.75v4.5a.75.75 0 01-1.5 0v-4.5A.75.75 0 0110 5zm0 10a1 1 0 100-2 1 1 0 000 2z")
}
