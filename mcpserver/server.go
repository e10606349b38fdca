// Package mcpserver exposes the page scraper as an MCP tool.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/pagescrape/models"
	"github.com/use-agent/pagescrape/scraper"
)

// ToolName is the name clients call the scrape tool by.
const ToolName = "scrape_page"

// New creates an MCP server with the scrape tool registered.
func New(sc *scraper.Scraper, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pagescrape",
		version,
		server.WithToolCapabilities(false),
	)
	s.AddTool(ScrapePageTool(), HandleScrapePage(sc))
	return s
}

// ScrapePageTool describes the scrape tool and its single argument.
func ScrapePageTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Fetch a single HTML page and return its title, description, robots and Open Graph tags, its h1-h3 headings and a short text preview. No JavaScript is executed."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The http(s) URL of the page to scrape"),
		),
	)
}

// HandleScrapePage runs the scraper in-process. Scrape failures are returned
// as tool errors carrying the same message the HTTP API would send.
func HandleScrapePage(sc *scraper.Scraper) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError(models.MsgMissingInput), nil
		}

		result, err := sc.Scrape(ctx, url)
		if err != nil {
			scrapeErr := models.AsScrapeError(err)
			slog.Warn("scrape tool failed", "kind", scrapeErr.Kind, "url", url, "error", err)
			return mcp.NewToolResultError(scrapeErr.Message), nil
		}

		return mcp.NewToolResultText(FormatResult(url, result)), nil
	}
}

// FormatResult renders a result as plain text for a model to read.
func FormatResult(url string, r *models.ScrapeResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n", url)
	writeField(&sb, "Title", r.Meta.Title)
	writeField(&sb, "Description", r.Meta.Description)
	writeField(&sb, "Robots", r.Meta.Robots)
	writeField(&sb, "OG Title", r.Meta.OGTitle)
	writeField(&sb, "OG Description", r.Meta.OGDescription)

	sb.WriteString("\nHeadings:\n")
	if len(r.Headings) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, h := range r.Headings {
		fmt.Fprintf(&sb, "- %s\n", h)
	}

	sb.WriteString("\nPreview:\n")
	sb.WriteString(r.HTMLPreview)
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		value = "(none)"
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}
