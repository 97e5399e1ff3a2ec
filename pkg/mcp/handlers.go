package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Samik0007/JournalAppPersonal/pkg/analytics"
	"github.com/Samik0007/JournalAppPersonal/pkg/journal"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Journal MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_journal"), nil
	})
}

// RegisterCreateEntryTool registers the create_entry tool.
func RegisterCreateEntryTool(s *server.MCPServer, db *sql.DB) {
	createEntry := mcp.NewTool("create_entry",
		mcp.WithDescription("Creates the journal entry for a calendar day. Only one entry may exist per day."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Entry title.")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Entry body (markup allowed).")),
		mcp.WithString("primary_mood", mcp.Required(), mcp.Description("Primary mood, one of the fifteen known moods (e.g. Happy, Calm, Anxious).")),
		mcp.WithString("category", mcp.Description("Optional free-text category.")),
		mcp.WithString("secondary_mood1", mcp.Description("Optional first secondary mood.")),
		mcp.WithString("secondary_mood2", mcp.Description("Optional second secondary mood.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tag names.")),
		mcp.WithString("date", mcp.Description("Optional entry date as YYYY-MM-DD; defaults to today.")),
	)
	s.AddTool(createEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, titleOk := request.Params.Arguments["title"].(string)
		description, descOk := request.Params.Arguments["description"].(string)
		primaryRaw, moodOk := request.Params.Arguments["primary_mood"].(string)

		if !titleOk || title == "" {
			return mcp.NewToolResultError("'title' parameter is required and must be a non-empty string."), nil
		}
		if !descOk {
			return mcp.NewToolResultError("'description' parameter is required."), nil
		}
		if !moodOk || primaryRaw == "" {
			return mcp.NewToolResultError("'primary_mood' parameter is required."), nil
		}

		primaryMood, err := journal.ParseMood(primaryRaw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		params := journal.CreateEntryParams{
			Title:       title,
			Description: description,
			PrimaryMood: primaryMood,
		}
		if category, ok := request.Params.Arguments["category"].(string); ok {
			params.Category = category
		}
		if raw, ok := request.Params.Arguments["secondary_mood1"].(string); ok && raw != "" {
			mood, err := journal.ParseMood(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			params.SecondaryMood1 = &mood
		}
		if raw, ok := request.Params.Arguments["secondary_mood2"].(string); ok && raw != "" {
			mood, err := journal.ParseMood(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			params.SecondaryMood2 = &mood
		}
		if raw, ok := request.Params.Arguments["tags"].(string); ok && raw != "" {
			params.TagNames = splitTagList(raw)
		}
		if raw, ok := request.Params.Arguments["date"].(string); ok && raw != "" {
			date, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid 'date' value '%s': expected YYYY-MM-DD.", raw)), nil
			}
			params.EntryDate = &date
		}

		entry, err := journal.CreateEntry(ctx, db, params)
		if err != nil {
			if errors.Is(err, journal.ErrDuplicateDateEntry) {
				return mcp.NewToolResultError("An entry already exists for that date."), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create entry: %v", err)), nil
		}

		return jsonResult(entry)
	})
}

// RegisterGetTodayEntryTool registers the get_today_entry tool.
func RegisterGetTodayEntryTool(s *server.MCPServer, db *sql.DB) {
	getToday := mcp.NewTool("get_today_entry",
		mcp.WithDescription("Retrieves today's journal entry, if one exists."),
	)
	s.AddTool(getToday, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, err := journal.GetTodayEntry(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to retrieve today's entry: %v", err)), nil
		}
		if entry == nil {
			return mcp.NewToolResultText("null"), nil
		}
		return jsonResult(entry)
	})
}

// RegisterGetEntryByDateTool registers the get_entry_by_date tool.
func RegisterGetEntryByDateTool(s *server.MCPServer, db *sql.DB) {
	getByDate := mcp.NewTool("get_entry_by_date",
		mcp.WithDescription("Retrieves the journal entry for a specific calendar day."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD.")),
	)
	s.AddTool(getByDate, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := request.Params.Arguments["date"].(string)
		if !ok || raw == "" {
			return mcp.NewToolResultError("'date' parameter is required."), nil
		}
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'date' value '%s': expected YYYY-MM-DD.", raw)), nil
		}

		entry, err := journal.GetEntryByDate(ctx, db, date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to retrieve entry: %v", err)), nil
		}
		if entry == nil {
			return mcp.NewToolResultText("null"), nil
		}
		return jsonResult(entry)
	})
}

// RegisterListEntriesTool registers the list_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, db *sql.DB) {
	listEntries := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists all journal entries, newest entry date first."),
	)
	s.AddTool(listEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := journal.ListEntries(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(entries)
	})
}

// RegisterSearchEntriesTool registers the search_entries tool.
func RegisterSearchEntriesTool(s *server.MCPServer, db *sql.DB) {
	searchEntries := mcp.NewTool("search_entries",
		mcp.WithDescription("Searches entries whose title or body contains the term."),
		mcp.WithString("term", mcp.Required(), mcp.Description("Substring to search for.")),
	)
	s.AddTool(searchEntries, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term, ok := request.Params.Arguments["term"].(string)
		if !ok || term == "" {
			return mcp.NewToolResultError("'term' parameter is required and must be a non-empty string."), nil
		}

		entries, err := journal.SearchEntriesByContent(ctx, db, term)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search entries: %v", err)), nil
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(entries)
	})
}

// RegisterDeleteEntryTool registers the delete_entry tool.
func RegisterDeleteEntryTool(s *server.MCPServer, db *sql.DB) {
	deleteEntry := mcp.NewTool("delete_entry",
		mcp.WithDescription("Permanently deletes a journal entry and its tag associations."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry ID (UUID).")),
	)
	s.AddTool(deleteEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := request.Params.Arguments["id"].(string)
		if !ok || raw == "" {
			return mcp.NewToolResultError("'id' parameter is required."), nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid entry ID '%s'.", raw)), nil
		}

		deleted, err := journal.DeleteEntry(ctx, db, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
		}
		if !deleted {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with ID '%s' not found.", raw)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Entry '%s' deleted.", raw)), nil
	})
}

// RegisterDailyStreakTool registers the daily_streak tool.
func RegisterDailyStreakTool(s *server.MCPServer, db *sql.DB) {
	dailyStreak := mcp.NewTool("daily_streak",
		mcp.WithDescription("Returns the current consecutive-day journaling streak ending today."),
	)
	s.AddTool(dailyStreak, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		streak, err := analytics.CurrentStreak(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute streak: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d", streak)), nil
	})
}

// RegisterMoodDistributionTool registers the mood_distribution tool.
func RegisterMoodDistributionTool(s *server.MCPServer, db *sql.DB) {
	moodDistribution := mcp.NewTool("mood_distribution",
		mcp.WithDescription("Returns Positive/Neutral/Negative mood counts over a date range."),
		mcp.WithString("start", mcp.Required(), mcp.Description("Range start as YYYY-MM-DD.")),
		mcp.WithString("end", mcp.Required(), mcp.Description("Range end as YYYY-MM-DD, inclusive.")),
	)
	s.AddTool(moodDistribution, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start, err := parseDateArg(request, "start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := parseDateArg(request, "end")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		distribution, err := analytics.MoodDistribution(ctx, db, start, end)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute mood distribution: %v", err)), nil
		}
		return jsonResult(distribution)
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func parseDateArg(request mcp.CallToolRequest, name string) (time.Time, error) {
	raw, ok := request.Params.Arguments[name].(string)
	if !ok || raw == "" {
		return time.Time{}, fmt.Errorf("'%s' parameter is required", name)
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid '%s' value '%s': expected YYYY-MM-DD", name, raw)
	}
	return date, nil
}
