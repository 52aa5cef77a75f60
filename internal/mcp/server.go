// Package mcp exposes the document index over the Model Context Protocol:
// five tools for querying and one resource per indexed document.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Citizen4our/arch-mcp-server/internal/config"
	"github.com/Citizen4our/arch-mcp-server/internal/docindex"
	"github.com/Citizen4our/arch-mcp-server/internal/logging"
)

// Version is the protocol-visible server version.
const Version = "0.1.0"

const instructions = `This server indexes a team's architecture documentation.
Use get_docs_list to discover documents by area, language or category,
get_project_overview for a per-project summary, get_all_adr_documents for
decision records in order, get_agreements for team agreements by language,
and get_resource_content to read any document by its docs:// URI.`

// Server wires the document store and content reader into an MCP server.
type Server struct {
	logger *logging.AppLogger
	store  *docindex.Store
	reader *docindex.ContentReader
	mcp    *server.MCPServer
}

// NewServer builds the MCP server and registers all tools and resources.
func NewServer(logger *logging.AppLogger, store *docindex.Store, reader *docindex.ContentReader) *Server {
	s := &Server{
		logger: logger,
		store:  store,
		reader: reader,
	}

	s.mcp = server.NewMCPServer(
		config.AppName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio blocks serving the stdio transport.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving on stdio")
	return server.ServeStdio(s.mcp)
}

// ServeHTTP blocks serving the streamable HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	s.logger.Info("serving on http", "addr", addr, "endpoint", "/mcp")
	httpServer := server.NewStreamableHTTPServer(s.mcp,
		server.WithEndpointPath("/mcp"),
	)
	return httpServer.Start(addr)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("get_resource_content",
		mcp.WithDescription("Read the content of a documentation resource by its docs:// URI."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Resource URI, e.g. docs://architecture/proj-a/c1.mdx"),
		),
		mcp.WithTitleAnnotation("Read document content"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleResourceContent)

	s.mcp.AddTool(mcp.NewTool("get_docs_list",
		mcp.WithDescription("List indexed documents, optionally filtered by area, language and category. Filters accept pipe-separated alternatives, e.g. lang=\"php|go\"."),
		mcp.WithString("area", mcp.Description("Filter by area, e.g. backend, architecture, agreements")),
		mcp.WithString("lang", mcp.Description("Filter by language tag; \"none\" matches documents without one")),
		mcp.WithString("category", mcp.Description("Filter by category tag, e.g. c1, erd, adr")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
		mcp.WithNumber("limit", mcp.Description("Page size, 1 to 200, default 50")),
		mcp.WithTitleAnnotation("List documents"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleDocsList)

	s.mcp.AddTool(mcp.NewTool("get_all_adr_documents",
		mcp.WithDescription("List all Architecture Decision Records in ascending numeric order."),
		mcp.WithTitleAnnotation("List ADRs"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleADRDocuments)

	s.mcp.AddTool(mcp.NewTool("get_project_overview",
		mcp.WithDescription("Summarize one project's documentation: counts, total size and documents grouped by category, area and language."),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Exact project name as assigned by the mapping rules"),
		),
		mcp.WithTitleAnnotation("Project overview"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleProjectOverview)

	s.mcp.AddTool(mcp.NewTool("get_agreements",
		mcp.WithDescription("List team agreement documents for one language."),
		mcp.WithString("lang",
			mcp.Required(),
			mcp.Description("Language tag, e.g. php, go; \"none\" matches agreements without one"),
		),
		mcp.WithTitleAnnotation("List agreements"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleAgreements)
}

// registerResources advertises every indexed document as an MCP resource.
// The registration reflects the snapshot at construction time; content reads
// always go through the current snapshot.
func (s *Server) registerResources() {
	idx := s.store.Snapshot()
	for _, rec := range idx.Records() {
		rec := rec
		s.mcp.AddResource(mcp.NewResource(
			rec.URI,
			rec.FilePath,
			mcp.WithResourceDescription(rec.Description),
			mcp.WithMIMEType(rec.MimeType),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			data, mime, err := s.reader.Resolve(s.store.Snapshot(), request.Params.URI)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      request.Params.URI,
					MIMEType: mime,
					Text:     string(data),
				},
			}, nil
		})
	}
	s.logger.Info("registered resources", "count", idx.Len())
}

func (s *Server) handleResourceContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !strings.HasPrefix(uri, docindex.URIScheme) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid resource path %q: must start with %s", uri, docindex.URIScheme)), nil
	}

	data, _, err := s.reader.Resolve(s.store.Snapshot(), uri)
	if err != nil {
		s.logger.Warn("content resolution failed", "uri", uri, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

type docsListResponse struct {
	Documents      []docindex.ResourceInfo `json:"documents"`
	TotalPages     int                     `json:"total_pages"`
	CurrentPage    int                     `json:"current_page"`
	Limit          int                     `json:"limit"`
	TotalDocuments int                     `json:"total_documents"`
}

func (s *Server) handleDocsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := docindex.Filters{
		Area:     req.GetString("area", ""),
		Lang:     req.GetString("lang", ""),
		Category: req.GetString("category", ""),
	}
	page := docindex.NormalizePage(req.GetInt("page", 0))
	limit := docindex.NormalizeLimit(req.GetInt("limit", 0))

	matches, total := s.store.Snapshot().List(filters, page, limit)

	resp := docsListResponse{
		Documents:      emptyIfNil(matches),
		TotalPages:     (total + limit - 1) / limit,
		CurrentPage:    page,
		Limit:          limit,
		TotalDocuments: total,
	}
	return jsonResult(resp)
}

type adrListResponse struct {
	ADRDocuments      []docindex.ADRDocument `json:"adr_documents"`
	TotalADRDocuments int                    `json:"total_adr_documents"`
}

func (s *Server) handleADRDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	adrs := s.store.Snapshot().ADRDocuments()
	resp := adrListResponse{
		ADRDocuments:      emptyIfNil(adrs),
		TotalADRDocuments: len(adrs),
	}
	return jsonResult(resp)
}

type projectOverviewResponse struct {
	Project             string                             `json:"project"`
	TotalDocuments      int                                `json:"total_documents"`
	TotalSize           int64                              `json:"total_size"`
	DocumentsByType     map[string][]docindex.ResourceInfo `json:"documents_by_type"`
	DocumentsByArea     map[string][]docindex.ResourceInfo `json:"documents_by_area"`
	DocumentsByLanguage map[string][]docindex.ResourceInfo `json:"documents_by_language"`
	AllDocuments        []docindex.ResourceInfo            `json:"all_documents"`
}

func (s *Server) handleProjectOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ov, err := s.store.Snapshot().ProjectOverview(project)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := projectOverviewResponse{
		Project:             ov.Project,
		TotalDocuments:      ov.Total,
		TotalSize:           ov.TotalSize,
		DocumentsByType:     ov.ByCategory,
		DocumentsByArea:     ov.ByArea,
		DocumentsByLanguage: ov.ByLang,
		AllDocuments:        ov.Documents,
	}
	return jsonResult(resp)
}

type agreementsResponse struct {
	Lang            string                  `json:"lang"`
	Agreements      []docindex.ResourceInfo `json:"agreements"`
	TotalAgreements int                     `json:"total_agreements"`
}

func (s *Server) handleAgreements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, err := req.RequireString("lang")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	agreements := s.store.Snapshot().AgreementsByLang(lang)
	resp := agreementsResponse{
		Lang:            lang,
		Agreements:      emptyIfNil(agreements),
		TotalAgreements: len(agreements),
	}
	return jsonResult(resp)
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
