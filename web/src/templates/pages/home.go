package pages

import (
	"fmt"
	"time"

	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/view"
	"github.com/nfrund/alphaprime/web/src/templates/components"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ChartCount is the number of chart thumbnails in the market trends gallery.
const ChartCount = 6

// HomeData is everything the home page shows.
type HomeData struct {
	Courses []domain.Course
	Posts   []domain.BlogPost
	Career  []domain.CareerItem
	Modal   view.Modal
}

// Home renders the single-page site: hero, courses, charts, blog, career
// guidance and contact, plus the modal host.
func Home(data HomeData) g.Node {
	modal := data.Modal
	if modal == nil {
		modal = view.NoModal{}
	}
	return g.Group{
		components.Navbar(),
		Main(
			Class("flex-grow max-w-7xl mx-auto px-6 py-10 w-full space-y-24"),
			hero(),
			coursesSection(data.Courses),
			chartsSection(),
			blogSection(data.Posts),
			careerSection(data.Career),
			contactSection(),
		),
		components.ModalHost(modal),
	}
}

func hero() g.Node {
	return Section(
		ID("home"),
		Class("bg-white rounded-[2rem] p-8 md:p-12 shadow-xl flex flex-col md:flex-row items-center gap-12 border border-[#0a585b]/5"),
		Div(
			Class("flex-1 space-y-6"),
			H1(
				Class("text-4xl md:text-5xl lg:text-6xl font-bold text-[#0a585b] leading-tight"),
				g.Text("Welcome to "),
				Span(Class("text-transparent bg-clip-text bg-gradient-to-r from-[#0a585b] to-[#2dd4bf]"), g.Text("AlphaPrime")),
			),
			P(
				Class("text-lg md:text-xl text-[#0f766e] max-w-lg leading-relaxed"),
				g.Text("Your gateway to mastering skills and advancing your career with expert-led courses and insightful resources."),
			),
			Div(Class("pt-4"), A(Href("#courses"), Class("inline-block px-6 py-2.5 rounded-xl font-semibold bg-[#0a585b] text-white hover:bg-[#0f766e]"), g.Text("Explore Courses"))),
		),
		Div(
			Class("flex-1 w-full"),
			Img(Src("https://picsum.photos/800/600?random=10"), Alt("Learning"), Class("w-full h-auto rounded-2xl shadow-xl")),
		),
	)
}

func coursesSection(courses []domain.Course) g.Node {
	return Section(
		ID("courses"),
		components.SectionTitle("Featured Courses"),
		Div(
			Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8"),
			g.Map(courses, components.CourseCard),
		),
	)
}

func chartsSection() g.Node {
	charts := make([]g.Node, 0, ChartCount)
	for i := 1; i <= ChartCount; i++ {
		charts = append(charts, Figure(
			Class("flex flex-col items-center gap-3 group"),
			Div(
				Class("w-32 h-32 rounded-2xl overflow-hidden shadow-md border-2 border-transparent group-hover:border-[#0a585b] transition-all animate-float"),
				Img(Src(fmt.Sprintf("https://picsum.photos/200/200?random=%d", i+20)), Alt("Chart"), Class("w-full h-full object-cover")),
			),
			FigCaption(Class("text-xs font-bold uppercase tracking-wider text-[#0a585b]"), g.Textf("Chart Analysis %d", i)),
		))
	}
	return Section(
		ID("charts"),
		components.SectionTitle("Market Trends"),
		Div(Class("grid grid-cols-2 md:grid-cols-3 lg:grid-cols-6 gap-6 justify-items-center"), g.Group(charts)),
	)
}

func blogSection(posts []domain.BlogPost) g.Node {
	return Section(
		ID("blog"),
		components.SectionTitle("Latest Insights"),
		Div(Class("grid grid-cols-1 md:grid-cols-3 gap-8"), g.Map(posts, components.BlogCard)),
	)
}

func careerSection(items []domain.CareerItem) g.Node {
	return Section(
		ID("career"),
		components.SectionTitle("Career Guidance"),
		Div(Class("space-y-6"), g.Map(items, components.CareerRow)),
	)
}

func contactSection() g.Node {
	return Section(
		ID("contact"),
		Class("bg-[#0a585b] text-white rounded-t-[3rem] -mx-6 px-8 py-12 md:py-20 mt-20 text-center"),
		Div(
			Class("max-w-4xl mx-auto space-y-8"),
			H2(Class("text-3xl font-bold"), g.Text("Get In Touch")),
			Div(
				Class("flex flex-wrap justify-center gap-8 text-lg opacity-90"),
				A(Href("mailto:info@alphaprime.com"), g.Text("info@alphaprime.com")),
				Span(g.Text("|")),
				A(Href("tel:+1234567890"), g.Text("+1 234 567 890")),
			),
			Div(
				Class("flex justify-center gap-6 pt-4"),
				g.Map([]string{"Facebook", "Twitter", "LinkedIn"}, func(name string) g.Node {
					return A(Href("#"), Title(name), Class("w-10 h-10 border border-white/30 rounded-full flex items-center justify-center hover:bg-white hover:text-[#0a585b]"), g.Text(name[:1]))
				}),
			),
			P(Class("text-sm opacity-50 pt-8"), g.Textf("© %d AlphaPrime. All rights reserved.", time.Now().Year())),
		),
	)
}
