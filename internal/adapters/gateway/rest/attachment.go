package rest

import (
	"context"
	"net/url"

	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// AttachmentAdapter implements the related-file port.
type AttachmentAdapter struct {
	client *Client
}

// NewAttachmentAdapter builds the attachment adapter on the shared client.
func NewAttachmentAdapter(client *Client) *AttachmentAdapter {
	return &AttachmentAdapter{client: client}
}

func (a *AttachmentAdapter) RelatedFiles(ctx context.Context, recordID string) ([]domain.RelatedFile, error) {
	var out []domain.RelatedFile
	path := "/api/v1/leave-requests/" + url.PathEscape(recordID) + "/files"
	if err := a.client.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AttachmentAdapter) DeleteRelatedFile(ctx context.Context, fileID, recordID string) error {
	path := "/api/v1/leave-requests/" + url.PathEscape(recordID) + "/files/" + url.PathEscape(fileID)
	return a.client.delete(ctx, path, nil, nil)
}
