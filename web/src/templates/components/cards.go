package components

import (
	"fmt"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// SectionTitle is the heading above each home page section.
func SectionTitle(text string) g.Node {
	return H2(
		Class("text-3xl md:text-4xl font-bold text-[#0a585b] mb-8 pb-3 border-b-4 border-[#0a585b]/20 inline-block"),
		g.Text(text),
	)
}

// CourseCard renders one course with its own Enroll Now button.
func CourseCard(c domain.Course) g.Node {
	return Div(
		Class("course-card bg-white rounded-3xl p-5 border border-[#0a585b]/10 shadow-sm hover:shadow-2xl hover:-translate-y-2 transition-all duration-300 flex flex-col group"),
		Div(
			Class("overflow-hidden rounded-2xl mb-4 h-48"),
			Img(Src(view.ContentURL(c.Image)), Alt(c.Title), Class("w-full h-full object-cover transform group-hover:scale-110 transition-transform duration-500")),
		),
		H3(Class("text-xl font-bold mb-2 text-[#0a585b]"), g.Text(c.Title)),
		P(Class("text-gray-600 text-sm mb-6 flex-grow"), g.Text(c.Description)),
		openModalButton(Outline, "/modal/enroll", "Enroll Now"),
	)
}

// BlogCard renders a post summary with a Read More link opening the post.
func BlogCard(p domain.BlogPost) g.Node {
	return Article(
		Class("blog-card bg-white rounded-3xl p-6 border border-[#0a585b]/10 shadow-sm hover:shadow-xl transition-all duration-300"),
		Img(Src(view.ContentURL(p.Image)), Alt(p.Title), Class("w-full h-40 object-cover rounded-xl mb-4")),
		H3(Class("text-lg font-bold text-[#0a585b] mb-2"), g.Text(p.Title)),
		P(Class("text-sm text-gray-600 mb-4 line-clamp-3"), g.Text(p.Summary)),
		A(
			Href(fmt.Sprintf("/?modal=blog&post=%s", p.ID)),
			hx.Get("/modal/blog/"+p.ID),
			hx.Target("#"+ModalHostID),
			hx.Swap("outerHTML"),
			Class("text-[#0a585b] font-bold text-sm hover:underline"),
			g.Text("Read More →"),
		),
	)
}

// BlogDetail is the body of the blog modal.
func BlogDetail(p domain.BlogPost) g.Node {
	return Div(
		Class("space-y-4"),
		Img(Src(view.ContentURL(p.Image)), Alt(p.Title), Class("w-full h-48 object-cover rounded-xl")),
		Div(Class("post-body prose text-gray-700 leading-relaxed"), view.TrustedHTML(p.HTML)),
		Div(
			Class("pt-4 flex justify-end"),
			Btn(Primary,
				Type("button"),
				hx.Get("/modal/close"),
				hx.Target("#"+ModalHostID),
				hx.Swap("outerHTML"),
				g.Text("Close"),
			),
		),
	)
}

// CareerRow renders one career guidance item.
func CareerRow(item domain.CareerItem) g.Node {
	return Div(
		Class("career-item bg-white p-6 rounded-2xl shadow-sm border border-[#0a585b]/10 hover:shadow-lg transition-shadow flex items-center gap-6"),
		Div(Class("w-16 h-16 bg-[#e0fcfc] rounded-2xl flex items-center justify-center text-3xl shadow-inner"), g.Text(item.Icon)),
		Div(
			H3(Class("text-xl font-bold text-[#0a585b] mb-1"), g.Text(item.Title)),
			P(Class("text-gray-600"), g.Text(item.Description)),
		),
	)
}
