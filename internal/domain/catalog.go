package domain

// Course is an offering listed on the home page.
type Course struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

// BlogPost is an article. Content holds the markdown source and HTML its
// rendered form.
type BlogPost struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Image   string `json:"image" yaml:"image"`
	Content string `json:"content" yaml:"-"`
	HTML    string `json:"-" yaml:"-"`
}

// CareerItem is a career guidance entry.
type CareerItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}
