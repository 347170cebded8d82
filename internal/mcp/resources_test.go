package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResourceURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantCode string
		wantRest string
		wantErr  bool
	}{
		{
			name:     "profile resource",
			uri:      "users://123456/profile",
			wantCode: "123456",
			wantRest: "profile",
		},
		{
			name:     "list resource",
			uri:      "epics://654321/list",
			wantCode: "654321",
			wantRest: "list",
		},
		{
			name:     "comments carry the task id",
			uri:      "comments://123456/01HTASKAAAAAAAAAAAAAAAAAAA",
			wantCode: "123456",
			wantRest: "01HTASKAAAAAAAAAAAAAAAAAAA",
		},
		{
			name:    "missing session code",
			uri:     "users:///profile",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := parseResourceURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, ref.SessionCode)
			assert.Equal(t, tt.wantRest, ref.Rest)
		})
	}
}

func TestDeleteMessage(t *testing.T) {
	assert.Equal(t, "epic deleted successfully", deleteMessage("epic", nil))
	assert.Equal(t,
		"Failed to delete task, it is not exists or already deleted",
		deleteMessage("task", assert.AnError))
}
