package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStateResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerStateResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"dots://state",
		"Dots State",
		mcp.WithResourceDescription("The whole dots document: today style, scratchpad, day notes and focus."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if err := svc.check(); err != nil {
			return nil, err
		}
		doc, err := svc.App.State(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, doc)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"dots://days/{date}",
		"Day",
		mcp.WithTemplateDescription("The note and grid slot for one date (YYYY-MM-DD)."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date, _ := request.Params.Arguments["date"].(string)
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}
		dto, err := svc.Day(ctx, date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
