package notion

type NotionError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text      textContent `json:"text"`
	PlainText string      `json:"plain_text,omitempty"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type selectOption struct {
	Name string `json:"name"`
}

type selectProperty struct {
	Select *selectOption `json:"select"`
}

type richTextProperty struct {
	RichText []richText `json:"rich_text"`
}

type dateValue struct {
	Start string `json:"start"`
}

type dateProperty struct {
	Date *dateValue `json:"date"`
}

// pageProperties uses pointers so partial updates only carry the
// properties that were set.
type pageProperties struct {
	Name        *titleProperty    `json:"Name,omitempty"`
	Subject     *selectProperty   `json:"Subject,omitempty"`
	Type        *selectProperty   `json:"Type,omitempty"`
	Status      *selectProperty   `json:"Status,omitempty"`
	Priority    *selectProperty   `json:"Priority,omitempty"`
	Description *richTextProperty `json:"Description,omitempty"`
	DueDate     *dateProperty     `json:"Due Date,omitempty"`
}

type pageParent struct {
	DatabaseId string `json:"database_id"`
}

type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type updatePageRequest struct {
	Properties *pageProperties `json:"properties,omitempty"`
	Archived   *bool           `json:"archived,omitempty"`
}

type page struct {
	Id         string         `json:"id"`
	Url        string         `json:"url"`
	Archived   bool           `json:"archived"`
	Properties pageProperties `json:"properties"`
}

type selectCondition struct {
	Equals string `json:"equals"`
}

// queryFilter is either a single property condition or an "and" of them,
// matching the two shapes the Notion query endpoint accepts.
type queryFilter struct {
	Property string           `json:"property,omitempty"`
	Select   *selectCondition `json:"select,omitempty"`
	And      []queryFilter    `json:"and,omitempty"`
}

type queryDatabaseRequest struct {
	Filter      *queryFilter `json:"filter,omitempty"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size,omitempty"`
}

type queryDatabaseResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}
