package api

// DayListResponse wraps paginated day listings.
type DayListResponse struct {
	Days  []DayListItem `json:"days" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"2024/06-June/2024-06-09.md" validate:"required"`
	Day     string `json:"day" example:"2024-06-09" validate:"required"`
	Title   string `json:"title,omitempty" example:"Trip day"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}
