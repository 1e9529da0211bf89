package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

// runDashboard renders a live view of a node's registry counters. Quit with
// q or Ctrl-C.
func runDashboard(baseURL string) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("init terminal ui: %w", err)
	}
	defer ui.Close()

	header := widgets.NewParagraph()
	header.Title = ServiceName
	header.Text = fmt.Sprintf("watching %s/stats (q to quit)", baseURL)
	header.SetRect(0, 0, 80, 3)

	counters := widgets.NewParagraph()
	counters.Title = "Delivery"
	counters.SetRect(0, 3, 40, 10)

	online := widgets.NewSparkline()
	online.LineColor = ui.ColorGreen
	onlineGroup := widgets.NewSparklineGroup(online)
	onlineGroup.Title = "Online users"
	onlineGroup.SetRect(40, 3, 80, 10)

	history := make([]float64, 0, 60)

	render := func(s *model.HubStats, fetchErr error) {
		if fetchErr != nil {
			counters.Text = fmt.Sprintf("unreachable: %v", fetchErr)
		} else {
			counters.Text = fmt.Sprintf(
				"online:    %d\ndelivered: %d\ndropped:   %d\nuptime:    %s",
				s.OnlineUsers, s.Delivered, s.Dropped, s.Uptime.Round(time.Second),
			)
			if len(history) == cap(history) {
				history = history[1:]
			}
			history = append(history, float64(s.OnlineUsers))
			online.Data = history
		}
		ui.Render(header, counters, onlineGroup)
	}

	render(fetchStats(baseURL))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	uiEvents := ui.PollEvents()

	for {
		select {
		case e := <-uiEvents:
			switch e.ID {
			case "q", "<C-c>":
				return nil
			}
		case <-ticker.C:
			render(fetchStats(baseURL))
		}
	}
}

func fetchStats(baseURL string) (*model.HubStats, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/stats")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var s model.HubStats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
