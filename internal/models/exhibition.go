package models

type Exhibition struct {
	ID        string `json:"id"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	Organizer string `json:"organizer"`
	Link      string `json:"link"`
}

type LandingPage struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
}
