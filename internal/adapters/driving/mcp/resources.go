package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Matcha resources.
	uriScheme = "matcha://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing creator profiles.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "profiles",
		Name:        "profiles",
		Description: "List of all registered creator profiles",
		MIMEType:    "application/json",
	}, s.handleProfilesResource)

	// Template for a single profile.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "profiles/{profileId}",
		Name:        "profile",
		Description: "A single creator profile",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	// Template for a chat window transcript.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "chats/{chatId}/messages",
		Name:        "chat-messages",
		Description: "Message history of a chat window",
		MIMEType:    "application/json",
	}, s.handleChatMessagesResource)
}

// profileInfo is the resource representation of a profile.
type profileInfo struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Bio       string   `json:"bio"`
	NicheTags []string `json:"nicheTags"`
	Location  string   `json:"location"`
	Languages []string `json:"languages"`
	Status    string   `json:"status"`
}

// handleProfilesResource returns a list of all creator profiles.
func (s *Server) handleProfilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	profiles, err := s.ports.Profile.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	infos := make([]profileInfo, len(profiles))
	for i := range profiles {
		infos[i] = profileInfo{
			ID:        profiles[i].ID,
			UserID:    profiles[i].UserID,
			Bio:       profiles[i].Bio,
			NicheTags: profiles[i].NicheTags,
			Location:  profiles[i].Location,
			Languages: profiles[i].Languages,
			Status:    string(profiles[i].Status),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profiles: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProfileResource returns a single creator profile.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract profileId from URI: matcha://profiles/{profileId}
	profileID := extractProfileID(req.Params.URI)
	if profileID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	profile, err := s.ports.Profile.Get(ctx, profileID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(profileInfo{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Bio:       profile.Bio,
		NicheTags: profile.NicheTags,
		Location:  profile.Location,
		Languages: profile.Languages,
		Status:    string(profile.Status),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleChatMessagesResource returns the message log of a chat window.
func (s *Server) handleChatMessagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract chatId from URI: matcha://chats/{chatId}/messages
	chatID := extractChatID(req.Params.URI)
	if chatID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	msgs, err := s.ports.Chat.History(ctx, chatID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type messageInfo struct {
		ID       string `json:"id"`
		SenderID string `json:"senderId"`
		Content  string `json:"content"`
		SentAt   string `json:"sentAt"`
	}

	infos := make([]messageInfo, len(msgs))
	for i := range msgs {
		infos[i] = messageInfo{
			ID:       msgs[i].ID,
			SenderID: msgs[i].SenderID,
			Content:  msgs[i].Content,
			SentAt:   msgs[i].SentAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling messages: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProfileID extracts the profile ID from a URI like matcha://profiles/{profileId}.
func extractProfileID(uri string) string {
	const prefix = uriScheme + "profiles/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// extractChatID extracts the chat ID from a URI like matcha://chats/{chatId}/messages.
func extractChatID(uri string) string {
	const prefix = uriScheme + "chats/"
	const suffix = "/messages"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
