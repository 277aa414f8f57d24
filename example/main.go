// FILE: lixenwraith/emuconfig/example/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lixenwraith/emuconfig"
)

// WebService is decoded from the resolved registry with Scan.
type WebService struct {
	APIURL   url.URL `toml:"web_api_url"`
	Username string  `toml:"citra_username"`
}

const initialSettings = `
[Renderer]
resolution_factor = 3
render_3d = 3

[Layout]
layout_option = 42

[System]
init_time = "not-a-number"

[Miscellaneous]
log_filter = "*:Info emuconfig:Debug"
`

func main() {
	dir, err := os.MkdirTemp("", "emuconfig-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	settingsPath := filepath.Join(dir, "settings.toml")

	// =========================================================================
	// PART 1: STARTUP RELOAD FROM A SETTINGS FILE
	// =========================================================================
	log.Println("➡️  PART 1: Building the registry from a settings file...")
	if err := os.WriteFile(settingsPath, []byte(initialSettings), 0644); err != nil {
		log.Fatal(err)
	}

	host, err := emuconfig.NewFileHost(settingsPath, "")
	if err != nil {
		log.Fatalf("❌ Failed to load settings: %v", err)
	}

	validator := func(v *emuconfig.Values) error {
		if v.ResolutionFactor.Value() == 0 {
			return fmt.Errorf("resolution_factor must not be auto in this example")
		}
		return nil
	}

	s, err := emuconfig.NewBuilder().
		WithHost(host).
		WithValidator(validator).
		Build()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}
	printState(s.Values(), "Initial State")

	var web WebService
	if err := s.Values().Scan(&web); err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	log.Printf("✅ Web service host: %s, user: %s", web.APIURL.Host, web.Username)

	// =========================================================================
	// PART 2: RELOADING ON FILE CHANGES
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Watching the settings file...")

	w, err := emuconfig.NewWatcher(s, host, emuconfig.WatchOptions{Debounce: 100 * time.Millisecond})
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer w.Stop()
	changes := w.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(500 * time.Millisecond)
		updated := initialSettings + "\n[Audio]\nvolume = 40\n"
		if err := os.WriteFile(settingsPath, []byte(updated), 0644); err != nil {
			log.Printf("❌ Modifier failed: %v", err)
		}
	}()

	select {
	case path := <-changes:
		log.Printf("✅ Watcher reported a change for: '%s'", path)
		printState(s.Values(), "Final State")
	case <-time.After(5 * time.Second):
		log.Fatalf("❌ Timed out waiting for watcher notification.")
	}
	wg.Wait()
}

func printState(v *emuconfig.Values, title string) {
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("             %s\n", title)
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("     Resolution factor: %d\n", v.ResolutionFactor.Value())
	fmt.Printf("     Stereo mode:       %s\n", v.Render3D.Value())
	fmt.Printf("     Shader:            %s\n", v.PPShaderName.Value())
	fmt.Printf("     Layout:            %d\n", v.LayoutOption.Value())
	fmt.Printf("     Init time:         %d\n", v.InitTime.Value())
	fmt.Printf("     Volume:            %.2f\n", v.Volume.Value())
	fmt.Printf("     Button A:          %s\n", v.Input().Buttons[0])
	fmt.Println("   --------------------------------------------------")
}
