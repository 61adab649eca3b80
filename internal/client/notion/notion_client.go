package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexus-ia/notion-automation/internal/models"
)

const notionVersion = "2022-06-28"

type NotionClient struct {
	baseUrl    string
	token      string
	databaseId string
	httpClient *http.Client
}

func NewNotionClient(token, databaseId string) *NotionClient {
	return &NotionClient{
		baseUrl:    "https://api.notion.com/v1",
		token:      token,
		databaseId: databaseId,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	// Date properties may carry a datetime start; keep the calendar day.
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("parse due date (notion): %w", err)
	}
	utc := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	return &utc, nil
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func (c *NotionClient) do(ctx context.Context, method, url string, payload any, wantStatus int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request (notion): %w", err)
		}
		reqBody = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request (notion): %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s (notion): %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return nil, decodeError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (notion): %w", err)
	}
	return respBody, nil
}

func encodeProperties(task models.Task) pageProperties {
	props := pageProperties{
		Name: &titleProperty{
			Title: []richText{{Text: textContent{Content: task.Title}}},
		},
		Subject:  &selectProperty{Select: &selectOption{Name: task.Subject}},
		Type:     &selectProperty{Select: &selectOption{Name: task.Type}},
		Status:   &selectProperty{Select: &selectOption{Name: task.Status}},
		Priority: &selectProperty{Select: &selectOption{Name: task.Priority}},
	}

	if task.Description != "" {
		props.Description = &richTextProperty{
			RichText: []richText{{Text: textContent{Content: task.Description}}},
		}
	}
	if task.DueDate != nil {
		props.DueDate = &dateProperty{Date: &dateValue{Start: formatDueDate(task.DueDate)}}
	}
	return props
}

func encodePatch(patch models.TaskPatch) pageProperties {
	var props pageProperties
	if patch.Title != nil {
		props.Name = &titleProperty{
			Title: []richText{{Text: textContent{Content: *patch.Title}}},
		}
	}
	if patch.Subject != nil {
		props.Subject = &selectProperty{Select: &selectOption{Name: *patch.Subject}}
	}
	if patch.Type != nil {
		props.Type = &selectProperty{Select: &selectOption{Name: *patch.Type}}
	}
	if patch.Status != nil {
		props.Status = &selectProperty{Select: &selectOption{Name: *patch.Status}}
	}
	if patch.Priority != nil {
		props.Priority = &selectProperty{Select: &selectOption{Name: *patch.Priority}}
	}
	if patch.Description != nil {
		props.Description = &richTextProperty{
			RichText: []richText{{Text: textContent{Content: *patch.Description}}},
		}
	}
	if patch.DueDate != nil {
		props.DueDate = &dateProperty{Date: &dateValue{Start: formatDueDate(patch.DueDate)}}
	}
	return props
}

func taskFromPage(p page) (models.Task, error) {
	task := models.Task{
		Id:       p.Id,
		Url:      p.Url,
		Archived: p.Archived,
	}

	if p.Properties.Name != nil && len(p.Properties.Name.Title) > 0 {
		rt := p.Properties.Name.Title[0]
		task.Title = rt.Text.Content
		if task.Title == "" {
			task.Title = rt.PlainText
		}
	}
	if p.Properties.Subject != nil && p.Properties.Subject.Select != nil {
		task.Subject = p.Properties.Subject.Select.Name
	}
	if p.Properties.Type != nil && p.Properties.Type.Select != nil {
		task.Type = p.Properties.Type.Select.Name
	}
	if p.Properties.Status != nil && p.Properties.Status.Select != nil {
		task.Status = p.Properties.Status.Select.Name
	}
	if p.Properties.Priority != nil && p.Properties.Priority.Select != nil {
		task.Priority = p.Properties.Priority.Select.Name
	}
	if p.Properties.Description != nil && len(p.Properties.Description.RichText) > 0 {
		rt := p.Properties.Description.RichText[0]
		task.Description = rt.Text.Content
		if task.Description == "" {
			task.Description = rt.PlainText
		}
	}
	if p.Properties.DueDate != nil && p.Properties.DueDate.Date != nil {
		dueDate, err := parseDueDate(p.Properties.DueDate.Date.Start)
		if err != nil {
			return models.Task{}, err
		}
		task.DueDate = dueDate
	}
	return task, nil
}

func (c *NotionClient) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	reqBody := createPageRequest{
		Parent:     pageParent{DatabaseId: c.databaseId},
		Properties: encodeProperties(task),
	}

	body, err := c.do(ctx, "POST", c.baseUrl+"/pages", reqBody, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var created page
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("parse create page response (notion): %w", err)
	}

	result, err := taskFromPage(created)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func buildFilter(filter models.TaskFilter) *queryFilter {
	var conditions []queryFilter
	if filter.Subject != "" {
		conditions = append(conditions, queryFilter{
			Property: "Subject",
			Select:   &selectCondition{Equals: filter.Subject},
		})
	}
	if filter.Status != "" {
		conditions = append(conditions, queryFilter{
			Property: "Status",
			Select:   &selectCondition{Equals: filter.Status},
		})
	}
	if filter.Type != "" {
		conditions = append(conditions, queryFilter{
			Property: "Type",
			Select:   &selectCondition{Equals: filter.Type},
		})
	}

	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return &conditions[0]
	default:
		return &queryFilter{And: conditions}
	}
}

// ListTasks queries the database and follows the continuation cursor until
// every matching page has been returned.
func (c *NotionClient) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	url := c.baseUrl + "/databases/" + c.databaseId + "/query"
	queryFilter := buildFilter(filter)

	var tasks []models.Task
	cursor := ""
	for {
		reqBody := queryDatabaseRequest{
			Filter:      queryFilter,
			StartCursor: cursor,
			PageSize:    100,
		}

		body, err := c.do(ctx, "POST", url, reqBody, http.StatusOK)
		if err != nil {
			return nil, err
		}

		var queryResp queryDatabaseResponse
		if err := json.Unmarshal(body, &queryResp); err != nil {
			return nil, fmt.Errorf("parse query response (notion): %w", err)
		}

		for _, p := range queryResp.Results {
			task, err := taskFromPage(p)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}

		if !queryResp.HasMore || queryResp.NextCursor == nil {
			break
		}
		cursor = *queryResp.NextCursor
	}

	return tasks, nil
}

// UpdateTask applies only the fields set in the patch; everything else is
// left untouched on the page.
func (c *NotionClient) UpdateTask(ctx context.Context, pageId string, patch models.TaskPatch) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	props := encodePatch(patch)
	reqBody := updatePageRequest{Properties: &props}

	body, err := c.do(ctx, "PATCH", c.baseUrl+"/pages/"+pageId, reqBody, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var updated page
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("parse update page response (notion): %w", err)
	}

	result, err := taskFromPage(updated)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ArchiveTask soft-deletes the page. Archiving an already archived page is
// accepted by Notion, so the call is idempotent.
func (c *NotionClient) ArchiveTask(ctx context.Context, pageId string) error {
	archived := true
	reqBody := updatePageRequest{Archived: &archived}

	_, err := c.do(ctx, "PATCH", c.baseUrl+"/pages/"+pageId, reqBody, http.StatusOK)
	return err
}

// WithBaseUrl points the client at a different API endpoint. Used by tests.
func (c *NotionClient) WithBaseUrl(url string) *NotionClient {
	c.baseUrl = url
	return c
}
