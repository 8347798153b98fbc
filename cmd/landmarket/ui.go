package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"landmarket/internal/config"
	"landmarket/internal/editor"
	"landmarket/internal/listing"
	"landmarket/internal/mapview"
	"landmarket/internal/pricing"
	"landmarket/internal/region"
	"landmarket/internal/store"
	"landmarket/internal/termmap"
	"landmarket/internal/view"
)

// ui drives the tabbed terminal interface. All input arrives on a single
// raw-mode keyboard loop; text prompts temporarily drop back to cooked mode
// the same way the detail view does.
type ui struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	listings *store.ListingStore
	regions  *region.Index
	editor   *editor.Editor
	ctrl     *view.Controller

	selected int
	status   string
}

func (u *ui) run() error {
	if runtime.GOOS == "windows" {
		enableVT()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal does not support raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(os.Stdin)
	u.redraw()

	for {
		b1, err := reader.ReadByte()
		if err != nil {
			return nil
		}

		switch b1 {
		case 27: // ESC or ANSI sequence
			if reader.Buffered() == 0 {
				// Bare ESC – exit
				fmt.Println()
				return nil
			}
			b2, _ := reader.ReadByte()
			if b2 != '[' {
				continue
			}
			if reader.Buffered() == 0 {
				continue
			}
			b3, _ := reader.ReadByte()
			u.arrow(b3)

		case 3, 'q': // Ctrl-C / quit
			fmt.Println()
			return nil

		case '\t':
			if u.ctrl.Active() == view.Browse {
				u.ctrl.SelectTab(view.Create)
			} else {
				u.ctrl.SelectTab(view.Browse)
			}
			u.status = ""
			u.redraw()

		case ' ':
			u.click()

		case '\r', '\n':
			if u.ctrl.Active() == view.Browse {
				u.showDetail(fd, &oldState, &reader)
			} else {
				u.submit()
			}

		case 'f':
			if u.ctrl.Active() == view.Create {
				u.cooked(fd, &oldState, &reader, u.promptForm)
			}

		case 'c':
			if u.ctrl.Active() == view.Create {
				u.cooked(fd, &oldState, &reader, u.promptCoordinates)
			}

		case 'p':
			if u.ctrl.Active() == view.Create {
				u.cooked(fd, &oldState, &reader, u.promptPriceHint)
			}

		case 'r':
			if u.ctrl.Active() == view.Create {
				u.ctrl.ResetDraft()
				u.status = "draft cleared"
				u.redraw()
			}

		case 'e':
			if err := u.listings.ExportCSV(u.cfg.CSVExportPath); err != nil {
				u.status = fmt.Sprintf("export failed: %v", err)
			} else {
				u.status = "exported to " + u.cfg.CSVExportPath
			}
			u.redraw()

		case 'z':
			// Re-measure after a terminal resize.
			u.ctrl.Refresh()
			u.redraw()

		default:
			// ignore other keys
		}
	}
}

// arrow dispatches a CSI final byte (A/B/C/D). Browse arrows move the list
// selection; Create arrows move the map cursor.
func (u *ui) arrow(b byte) {
	if u.ctrl.Active() == view.Browse {
		switch b {
		case 'A':
			if u.selected > 0 {
				u.selected--
				u.redraw()
			}
		case 'B':
			if u.selected < len(u.listings.All())-1 {
				u.selected++
				u.redraw()
			}
		}
		return
	}

	m := u.activeTermMap()
	if m == nil {
		return
	}
	switch b {
	case 'A':
		m.MoveCursor(0, -1)
	case 'B':
		m.MoveCursor(0, 1)
	case 'C':
		m.MoveCursor(1, 0)
	case 'D':
		m.MoveCursor(-1, 0)
	}
	u.redraw()
}

// click forwards a Space press to the active map. On the Create tab a map
// click routes through the coordinate editor and moves the draft marker; on
// Browse it may hit a marker and zoom in on that listing.
func (u *ui) click() {
	m := u.activeTermMap()
	if m == nil {
		return
	}
	m.Click()
	if u.ctrl.Active() == view.Create {
		loc := u.editor.Current()
		u.status = fmt.Sprintf("proposed location set to %.4f, %.4f", loc.Lat, loc.Lng)
	}
	u.redraw()
}

func (u *ui) submit() {
	l, err := u.ctrl.Submit()
	if err != nil {
		u.status = fmt.Sprintf("not saved: %v", err)
	} else {
		u.status = fmt.Sprintf("listing saved: %s", l.Title)
		u.selected = len(u.listings.All()) - 1
	}
	u.redraw()
}

// activeTermMap returns the active tab's live map, or nil when the engine
// failed to build one.
func (u *ui) activeTermMap() *termmap.Map {
	var mv mapview.Map
	if u.ctrl.Active() == view.Browse {
		mv = u.ctrl.BrowseMap()
	} else {
		mv = u.ctrl.CreateMap()
	}
	m, _ := mv.(*termmap.Map)
	return m
}

// cooked drops out of raw mode, runs fn against a fresh line reader, then
// re-enters raw mode and redraws. Mirrors the detail-view dance.
func (u *ui) cooked(fd int, oldState **term.State, reader **bufio.Reader, fn func(in *bufio.Reader)) {
	term.Restore(fd, *oldState)
	fmt.Println()
	fn(bufio.NewReader(os.Stdin))

	st, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	*oldState = st
	*reader = bufio.NewReader(os.Stdin)
	u.redraw()
}

func (u *ui) showDetail(fd int, oldState **term.State, reader **bufio.Reader) {
	all := u.listings.All()
	if u.selected >= len(all) {
		return
	}
	l := all[u.selected]
	u.ctrl.FocusListing(l)

	u.cooked(fd, oldState, reader, func(in *bufio.Reader) {
		u.renderListing(l)
		fmt.Print("\n(press Enter to return)")
		_, _ = in.ReadBytes('\n')
	})
}

func (u *ui) promptForm(in *bufio.Reader) {
	d := u.ctrl.Draft()
	d.Title = promptText(in, "Title", d.Title)
	d.Description = promptText(in, "Description", d.Description)
	d.Price = promptNumber(in, "Price (₹)", d.Price)
	d.Area = promptNumber(in, "Area (acres)", d.Area)
}

func (u *ui) promptCoordinates(in *bufio.Reader) {
	loc := u.editor.Current()
	fmt.Printf("Latitude [%.4f]: ", loc.Lat)
	if text := readLine(in); text != "" {
		u.editor.SetLatitude(text)
	}
	loc = u.editor.Current()
	fmt.Printf("Longitude [%.4f]: ", loc.Lng)
	if text := readLine(in); text != "" {
		u.editor.SetLongitude(text)
	}
}

func (u *ui) promptPriceHint(in *bufio.Reader) {
	crop := promptText(in, "Crop", "rice")
	acres := promptNumber(in, "Land (acres)", u.ctrl.Draft().Area)
	water := promptNumber(in, "Water availability (%)", 50)
	soil := promptText(in, "Soil type", "loamy")

	est := pricing.Suggest(crop, acres, water, soil)
	fmt.Printf("\nSuggested price per quintal: ₹%.2f (range ₹%.2f – ₹%.2f)\n", est.Avg, est.Min, est.Max)
	fmt.Print("\n(press Enter to return)")
	_, _ = in.ReadBytes('\n')
}

func (u *ui) redraw() {
	// Clear screen (ANSI reset to top + clear screen)
	fmt.Print("\033[H\033[2J")

	active := u.ctrl.Active()
	tabs := []string{" Browse ", " Add Listing "}
	if active == view.Browse {
		tabs[0] = "[Browse]"
	} else {
		tabs[1] = "[Add Listing]"
	}
	fmt.Printf("%s %s   (Tab to switch, q to quit)\n", tabs[0], tabs[1])

	if m := u.activeTermMap(); m != nil {
		fmt.Print(m.Render())
	} else {
		fmt.Println("(map unavailable)")
	}

	if active == view.Browse {
		u.renderBrowse()
	} else {
		u.renderCreate()
	}

	if u.status != "" {
		fmt.Println()
		fmt.Println(u.status)
	}
}

func (u *ui) renderBrowse() {
	all := u.listings.All()
	if u.selected >= len(all) {
		u.selected = len(all) - 1
	}
	if u.selected < 0 {
		u.selected = 0
	}

	if len(all) == 0 {
		fmt.Println("No listings yet. Press Tab to add one.")
		return
	}
	for i, l := range all {
		prefix := "  "
		if i == u.selected {
			prefix = "> "
		}
		fmt.Printf("%s%-32s ₹%-12.0f %.2f acres\n", prefix, l.Title, l.Price, l.Area)
	}
	fmt.Println("(↑/↓ select, Enter details, Space click map, e export CSV)")
}

func (u *ui) renderCreate() {
	d := u.ctrl.Draft()
	loc := u.editor.Current()

	fmt.Printf("Title       : %s\n", d.Title)
	fmt.Printf("Description : %s\n", d.Description)
	fmt.Printf("Price       : ₹%.0f\n", d.Price)
	fmt.Printf("Area        : %.2f acres\n", d.Area)
	line := fmt.Sprintf("Location    : %.4f, %.4f", loc.Lat, loc.Lng)
	if name := u.regions.DistrictAt(loc.Lat, loc.Lng); name != "" {
		line += "  (" + name + ")"
	}
	fmt.Println(line)
	fmt.Println("(arrows move cursor, Space set location, f form, c coords, p price hint, r reset, Enter submit)")
}

// renderListing prints one listing in a readable aligned layout.
func (u *ui) renderListing(l listing.Listing) {
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Title             : %s\n", l.Title)
	fmt.Printf("Description       : %s\n", l.Description)
	fmt.Printf("Price             : ₹%.0f\n", l.Price)
	fmt.Printf("Area              : %.2f acres\n", l.Area)
	fmt.Printf("Location          : %.6f, %.6f\n", l.Location.Lat, l.Location.Lng)

	if name := u.regions.DistrictAt(l.Location.Lat, l.Location.Lng); name != "" {
		fmt.Printf("District          : %s\n", name)
	} else {
		fmt.Println("No district boundary found for this location")
	}

	near := listing.Nearby(u.listings.All(), l.Location, 5, l.ID)
	fmt.Printf("Nearby (5 mi)     : %d listing(s)\n", len(near))
	fmt.Printf("Map URL           : %s\n", listing.LookupURL(l.Location))
	fmt.Println(strings.Repeat("-", 80))
}

func promptText(in *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if text := readLine(in); text != "" {
		return text
	}
	return current
}

func promptNumber(in *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("%s [%g]: ", label, current)
	text := readLine(in)
	if text == "" {
		return current
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		fmt.Printf("(not a number, keeping %g)\n", current)
		return current
	}
	return v
}

func readLine(in *bufio.Reader) string {
	text, _ := in.ReadString('\n')
	return strings.TrimSpace(text)
}
