package notion

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AuthError means the integration token was rejected by Notion.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notion auth error: %s", e.Message)
	}
	return fmt.Sprintf("notion auth error: status %d", e.Status)
}

// RemoteError is any other non-2xx answer from the Notion API.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notion error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("notion error: status %d", e.Status)
}

func decodeError(resp *http.Response) error {
	errorBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error body (notion): %w", err)
	}

	var notionErr NotionError
	if err := json.Unmarshal(errorBody, &notionErr); err != nil {
		notionErr = NotionError{}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{
			Status:  resp.StatusCode,
			Code:    notionErr.Code,
			Message: notionErr.Message,
		}
	}
	return &RemoteError{
		Status:  resp.StatusCode,
		Code:    notionErr.Code,
		Message: notionErr.Message,
	}
}
