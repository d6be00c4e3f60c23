// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"github.com/redlinelab/redline/internal/contract"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Redline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Redline Readiness Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: training_decision ---
	s.AddTool(mcp.NewTool("training_decision",
		mcp.WithDescription("Run the full readiness pipeline and return per-day training decisions: score, zone, status, action, and constraints."),
		mcp.WithString("data_dir", mcp.Description("Directory holding daily.csv and sessions.csv (defaults to the server's configured directory).")),
		mcp.WithString("date", mcp.Description("Anchor day in YYYY-MM-DD form. Defaults to the latest recorded day.")),
		mcp.WithNumber("days", mcp.Description("Trailing range length in days.")),
		mcp.WithString("variant", mcp.Description("Scoring variant. Defaults to 'curve'."), mcp.Enum("curve", "linear")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of days returned.")),
	), h.handleTrainingDecision)

	// --- 2. Tool: readiness_score ---
	s.AddTool(mcp.NewTool("readiness_score",
		mcp.WithDescription("Score daily readiness on the 0-100 scale with component breakdowns, without the decision layer."),
		mcp.WithString("data_dir", mcp.Description("Directory holding daily.csv and sessions.csv.")),
		mcp.WithString("date", mcp.Description("Anchor day in YYYY-MM-DD form.")),
		mcp.WithNumber("days", mcp.Description("Trailing range length in days.")),
		mcp.WithString("variant", mcp.Description("Scoring variant."), mcp.Enum("curve", "linear")),
	), h.handleReadinessScore)

	// --- 3. Tool: overload_flags ---
	s.AddTool(mcp.NewTool("overload_flags",
		mcp.WithDescription("Detect neuromuscular overload per exercise: flags, severities, evidence, and the readiness cap they impose."),
		mcp.WithString("data_dir", mcp.Description("Directory holding daily.csv and sessions.csv.")),
		mcp.WithString("date", mcp.Description("Anchor day in YYYY-MM-DD form.")),
		mcp.WithNumber("days", mcp.Description("Trailing range length in days.")),
	), h.handleOverloadFlags)

	// --- 4. Tool: athlete_profile ---
	s.AddTool(mcp.NewTool("athlete_profile",
		mcp.WithDescription("Build the personalization profile: sleep response correlation, archetypes, and adjustment factors."),
		mcp.WithString("data_dir", mcp.Description("Directory holding daily.csv and sessions.csv.")),
		mcp.WithString("date", mcp.Description("Anchor day in YYYY-MM-DD form.")),
		mcp.WithNumber("days", mcp.Description("Trailing range length in days.")),
	), h.handleAthleteProfile)

	return s
}

// StartMCPServer starts the Redline MCP server on stdio.
func StartMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
