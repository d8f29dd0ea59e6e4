package demo

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

var scriptSuffixes = []string{"extract", "transform", "load", "validate", "publish", "cleanup"}

var groupTypes = []string{"nightly", "hourly", "on-demand"}

// Seed fills the store and tracker with plausible demo data. The admin
// account (admin/admin123) always exists so the console is usable out
// of the box.
func Seed(store *Store, tracker *Tracker, cfg SeedConfig) error {
	if cfg.Random != 0 {
		gofakeit.Seed(cfg.Random)
	}

	if _, err := store.CreateUser("admin", "admin123", "admin@pipeforge.local", "ADMIN"); err != nil {
		return err
	}
	for i := 0; i < cfg.Users; i++ {
		username := gofakeit.Username()
		if _, err := store.CreateUser(username, gofakeit.Password(true, true, true, false, false, 12), gofakeit.Email(), "USER"); err != nil {
			// Random usernames can collide; skip duplicates.
			continue
		}
	}

	projects := make([]*Project, 0, cfg.Projects)
	for i := 0; i < cfg.Projects; i++ {
		p := store.CreateProject(
			gofakeit.AppName(),
			gofakeit.Sentence(6),
			pick("Active", "Active", "Paused"),
			"admin",
		)
		projects = append(projects, p)
	}

	scripts := make([]*Script, 0, cfg.Scripts)
	for i := 0; i < cfg.Scripts; i++ {
		name := fmt.Sprintf("%s_%s.py", gofakeit.Word(), scriptSuffixes[i%len(scriptSuffixes)])
		sc := store.CreateScript(
			name,
			gofakeit.Sentence(5),
			groupTypes[i%len(groupTypes)],
			"/opt/pipeforge/scripts/"+name,
			"admin",
		)
		scripts = append(scripts, sc)
	}

	for i := 0; i < cfg.Groups && len(projects) > 0 && len(scripts) > 0; i++ {
		var order []ScriptOrder
		for j := 0; j < 2 && i*2+j < len(scripts); j++ {
			sc := scripts[i*2+j]
			order = append(order, ScriptOrder{ScriptID: sc.ID, Name: sc.Name, Order: j + 1})
		}
		name := fmt.Sprintf("%s-%s", gofakeit.Word(), groupTypes[i%len(groupTypes)])
		if _, err := store.CreateGroup(name, gofakeit.Sentence(4), projects[i%len(projects)].Name, "admin", order); err != nil {
			continue
		}
	}

	statuses := []string{StatusRunning, StatusQueued, StatusPaused, StatusCompleted, StatusFailed}
	for i := 0; i < cfg.Running && len(scripts) > 0; i++ {
		sc := scripts[i%len(scripts)]
		status := statuses[i%len(statuses)]
		progress := 0
		switch status {
		case StatusRunning, StatusPaused:
			progress = gofakeit.Number(5, 80)
		case StatusCompleted:
			progress = 100
		case StatusFailed:
			progress = gofakeit.Number(10, 90)
		}
		tracker.Add(RunningScript{
			ScriptName:     sc.Name,
			Group:          groupTypes[i%len(groupTypes)],
			Project:        pickProject(projects, i),
			Status:         status,
			Progress:       progress,
			ExecutionOrder: i + 1,
			Logs:           []string{fmt.Sprintf("%s started", sc.Name)},
		})
	}

	return nil
}

func pick(options ...string) string {
	return options[gofakeit.Number(0, len(options)-1)]
}

func pickProject(projects []*Project, i int) string {
	if len(projects) == 0 {
		return ""
	}
	return projects[i%len(projects)].Name
}
