package site

import "time"

// Everything on the public pages is fixed content; only the wedding date
// comes from configuration.

const PlaceholderImage = "/images/placeholder.jpg"

var heroSlides = []string{
	"/images/hero/hero-1.jpg",
	"/images/hero/hero-2.jpg",
	"/images/hero/hero-3.jpg",
	"/images/hero/hero-4.jpg",
	"/images/hero/hero-5.jpg",
}

// HeroInterval is how long each hero image stays up.
const HeroInterval = 5 * time.Second

type GalleryCategory struct {
	Slug  string
	Label string
	Files []string
}

var galleryCategories = []GalleryCategory{
	{
		Slug:  "engagement",
		Label: "Engagement",
		Files: []string{
			"/gallery/engagement/eng-01.jpg",
			"/gallery/engagement/eng-02.jpg",
			"/gallery/engagement/eng-03.jpg",
			"/gallery/engagement/eng-04.jpg",
			"/gallery/engagement/proposal.mp4",
		},
	},
	{
		Slug:  "together",
		Label: "Through the Years",
		Files: []string{
			"/gallery/together/2018-paris.jpg",
			"/gallery/together/2019-tel-aviv.jpg",
			"/gallery/together/2021-alps.jpg",
			"/gallery/together/2023-lisbon.jpg",
		},
	},
	{
		Slug:  "venue",
		Label: "The Venue",
		Files: []string{
			"/gallery/venue/garden.jpg",
			"/gallery/venue/hall.jpg",
			"/gallery/venue/sunset.jpg",
			"/gallery/venue/walkthrough.mp4",
		},
	},
}

type ProgramItem struct {
	Time        string
	Title       string
	Description string
	Location    string
}

var program = []ProgramItem{
	{Time: "16:00", Title: "Reception", Description: "Drinks and light bites in the garden", Location: "Garden Terrace"},
	{Time: "17:30", Title: "Ceremony", Description: "Under the olive trees", Location: "Olive Grove"},
	{Time: "18:30", Title: "Dinner", Description: "Seated dinner with toasts", Location: "Main Hall"},
	{Time: "20:30", Title: "First Dance", Location: "Main Hall"},
	{Time: "21:00", Title: "Party", Description: "Dancing until late", Location: "Main Hall"},
	{Time: "00:30", Title: "Late Night Snacks", Location: "Garden Terrace"},
}

type WishlistItem struct {
	Name        string
	Description string
	URL         string
}

var wishlist = []WishlistItem{
	{Name: "Honeymoon Fund", Description: "Help us get to Japan"},
	{Name: "Cooking Class for Two", Description: "Because one of us can't cook"},
	{Name: "Espresso Machine", Description: "Mornings matter"},
	{Name: "Hot Air Balloon Ride", Description: "Something to remember"},
	{Name: "Charity Donation", Description: "A gift to the animal shelter we volunteer at"},
}

type PartyMember struct {
	Name  string
	Role  string
	Bio   string
	Photo string
}

var weddingParty = []PartyMember{
	{Name: "Maya", Role: "Maid of Honor", Bio: "Sister of the bride and keeper of every childhood secret.", Photo: "/images/party/maya.jpg"},
	{Name: "Yoni", Role: "Best Man", Bio: "Roommate of the groom for six years, still owes him rent.", Photo: "/images/party/yoni.jpg"},
	{Name: "Tamar", Role: "Bridesmaid", Bio: "Met the bride on the first day of university.", Photo: "/images/party/tamar.jpg"},
	{Name: "Eitan", Role: "Groomsman", Bio: "Taught the groom to surf, or tried.", Photo: "/images/party/eitan.jpg"},
	{Name: "Noa", Role: "Flower Girl", Bio: "Age six, takes the job very seriously.", Photo: "/images/party/noa.jpg"},
}
