package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/templui/focusflow/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Strikethrough(true)

	priorityStyles = map[string]lipgloss.Style{
		model.GoalPriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		model.GoalPriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		model.GoalPriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

const dateLayout = "2006-01-02"

func renderGoals(w io.Writer, goals []model.Goal) {
	if len(goals) == 0 {
		printf(w, "%s\n", mutedStyle.Render("No goals yet. Add one with `focus goals add`."))
		return
	}
	for _, g := range goals {
		renderGoal(w, g)
	}
}

func renderGoal(w io.Writer, g model.Goal) {
	check, title := "[ ]", g.Title
	if g.IsCompleted {
		check, title = "[x]", doneStyle.Render(g.Title)
	}

	meta := []string{label(g.Category), priorityStyles[g.Priority].Render(label(g.Priority))}
	if g.DueDate != nil {
		meta = append(meta, "due "+g.DueDate.Format(dateLayout))
	}

	printf(w, "%s %s %s  %s\n", check, idStyle.Render("#"+itoa(g.ID)), title, mutedStyle.Render(strings.Join(meta, " · ")))
	if g.Description != nil && *g.Description != "" {
		printf(w, "      %s\n", mutedStyle.Render(*g.Description))
	}
}

// renderFocus prints today's check-in. goals resolves the top priority title.
func renderFocus(w io.Writer, focus *model.DailyFocus, goals []model.Goal) {
	printf(w, "%s\n", headerStyle.Render("Daily Focus"))
	if focus == nil {
		printf(w, "%s\n", mutedStyle.Render("No check-in today. Start one with `focus focus set`."))
		return
	}
	printf(w, "Date:         %s\n", focus.FocusDate.Format(dateLayout))

	printf(w, "Top priority: %s\n", topPriority(focus.TopPriorityID, goals))

	mood := "-"
	if focus.Mood != nil {
		mood = label(*focus.Mood)
	}
	printf(w, "Mood:         %s\n", mood)

	energy := "-"
	if focus.EnergyLevel != nil {
		level := *focus.EnergyLevel
		energy = strings.Repeat("●", level) + strings.Repeat("○", model.EnergyLevelMax-level) + " " + itoa(int64(level)) + "/5"
	}
	printf(w, "Energy:       %s\n", energy)

	if focus.Notes != nil && *focus.Notes != "" {
		printf(w, "Notes:        %s\n", *focus.Notes)
	}
}

func topPriority(id *int64, goals []model.Goal) string {
	if id == nil {
		return "-"
	}
	for _, g := range goals {
		if g.ID == *id {
			return g.Title
		}
	}
	return "#" + itoa(*id)
}

func renderResources(w io.Writer, resources []model.Resource) {
	if len(resources) == 0 {
		printf(w, "%s\n", mutedStyle.Render("No resources match."))
		return
	}
	for _, r := range resources {
		printf(w, "%s %s  %s\n", idStyle.Render("#"+itoa(r.ID)), r.Title,
			mutedStyle.Render(label(r.Type)+" · "+label(r.Category)))
	}
}

func renderResource(w io.Writer, r *model.Resource) {
	printf(w, "%s\n", headerStyle.Render(r.Title))
	printf(w, "%s\n", mutedStyle.Render(label(r.Type)+" · "+label(r.Category)))
	if len(r.Tags) > 0 {
		printf(w, "%s\n", mutedStyle.Render("#"+strings.Join(r.Tags, " #")))
	}
	printf(w, "\n%s\n", strings.TrimSpace(r.Content))
}
