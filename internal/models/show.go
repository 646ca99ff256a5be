package models

// Show is a TV show as listed on the site home page.
// ID is the site identifier; Name is only used for matching and URL construction.
type Show struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Episode is one entry of the episode listing of a (show, season) pair.
type Episode struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}
