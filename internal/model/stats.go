package model

// Stats summarizes the mailbox.
type Stats struct {
	Total         int `json:"total" db:"total"`
	Unread        int `json:"unread" db:"unread"`
	Important     int `json:"important" db:"important"`
	Archived      int `json:"archived" db:"archived"`
	Uncategorized int `json:"uncategorized" db:"uncategorized"`

	ByCategory []CategoryCount `json:"by_category" db:"-"`
}

// CategoryCount is the number of emails filed under one category.
type CategoryCount struct {
	CategoryID int64  `json:"category_id" db:"id"`
	Name       string `json:"name" db:"name"`
	Color      string `json:"color" db:"color"`
	Count      int    `json:"count" db:"total"`
}
