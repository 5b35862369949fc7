package site

import "time"

// Slideshow rotates through a fixed list of images.
type Slideshow struct {
	Images   []string
	Interval time.Duration
}

func NewHeroSlideshow() Slideshow {
	return Slideshow{Images: heroSlides, Interval: HeroInterval}
}

// Index wraps i into the image list, in both directions.
func (s Slideshow) Index(i int) int {
	n := len(s.Images)
	if n == 0 {
		return 0
	}

	return ((i % n) + n) % n
}

func (s Slideshow) At(i int) string {
	if len(s.Images) == 0 {
		return ""
	}

	return s.Images[s.Index(i)]
}

// IntervalMillis is the rotation interval in the unit the page script uses.
func (s Slideshow) IntervalMillis() int64 {
	return s.Interval.Milliseconds()
}
