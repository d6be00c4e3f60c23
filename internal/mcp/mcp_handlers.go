package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/schema"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// cloneWithOverrides applies the request parameters shared by every tool
// onto a copy of the base config. The base config is never mutated, so
// concurrent tool calls stay independent.
func (h *toolHandler) cloneWithOverrides(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	if p := request.GetString("data_dir", ""); p != "" {
		// History paths were resolved against the original directory
		cfg.DataDir = p
		cfg.DailyFile = filepath.Join(p, contract.DefaultDailyFileName)
		cfg.SessionsFile = filepath.Join(p, contract.DefaultSessionsFileName)
	}
	if d := request.GetString("date", ""); d != "" {
		t, err := time.Parse(contract.DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", d)
		}
		cfg.Date = t
	}
	if days := request.GetInt("days", 0); days > 0 {
		cfg.Days = days
	}
	if v := request.GetString("variant", ""); v != "" {
		cfg.Variant = schema.ScorerVariant(v)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg, nil
}

func (h *toolHandler) handleTrainingDecision(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	days, err := core.GetDecideResults(cfg, histfile.NewFileProvider(), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(days, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleReadinessScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := core.GetScoreResults(cfg, histfile.NewFileProvider())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleOverloadFlags(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	assessment, err := core.GetFlagsResults(cfg, histfile.NewFileProvider())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("overload analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(assessment, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAthleteProfile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.cloneWithOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	profile, err := core.GetProfileResults(cfg, histfile.NewFileProvider())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("profile analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
