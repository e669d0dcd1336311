package scope

import (
	"fmt"

	termui "github.com/gizak/termui/v3"
	ui "github.com/gizak/termui/v3"
	widgets "github.com/gizak/termui/v3/widgets"
	"github.com/pkg/errors"
)

var boxTitleStyle = termui.NewStyle(termui.ColorRed, termui.ColorBlue)
var showHelpScreen bool = false

// Show displays the frames in the terminal until the user quits.
func Show(frames [][2]float64, sampleRate int) error {
	if len(frames) == 0 {
		return errors.New("nothing to show")
	}
	if err := ui.Init(); err != nil {
		return errors.Wrap(err, "initializing terminal UI")
	}
	defer ui.Close()

	view := NewView(frames, sampleRate)
	// Start with the whole render on screen
	width, _ := termui.TerminalDimensions()
	for view.Zoom < MAX_ZOOM && len(frames) > plotColumns(width)*view.Zoom {
		view.ZoomOut()
	}

	UpdateScreen(view)
	for e := range ui.PollEvents() {
		width, _ := termui.TerminalDimensions()
		columns := plotColumns(width)

		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			if !showHelpScreen {
				return nil
			}
			showHelpScreen = false
		case "h", "<F1>", "?":
			showHelpScreen = !showHelpScreen
		case "<Right>", "l":
			view.Pan(columns * view.Zoom / 4)
		case "<Left>", "j":
			view.Pan(-columns * view.Zoom / 4)
		case "<PageDown>":
			view.Pan(columns * view.Zoom)
		case "<PageUp>":
			view.Pan(-columns * view.Zoom)
		case "+", "<Up>":
			view.ZoomIn()
		case "-", "<Down>":
			view.ZoomOut()
		case "<Home>", "g":
			view.Home()
		case "<End>", "G":
			view.End(columns)
		}
		ui.Clear()
		UpdateScreen(view)
	}

	return nil
}

// Braille plots use two points per terminal column
func plotColumns(width int) int {
	return (width - 8) * 2
}

func UpdateScreen(view *View) {
	if showHelpScreen {
		renderHelpScreen()
		return
	}

	width, height := termui.TerminalDimensions()
	columns := plotColumns(width)
	left, right := view.Window(columns)

	plot := widgets.NewPlot()
	plot.Title = fmt.Sprintf("  Output (%d Hz)  ", view.SampleRate)
	plot.TitleStyle = boxTitleStyle
	plot.Data = [][]float64{left, right}
	plot.MaxVal = 2.0
	plot.Marker = widgets.MarkerBraille
	plot.AxesColor = termui.ColorWhite
	plot.LineColors = []termui.Color{termui.ColorGreen, termui.ColorYellow}
	plot.SetRect(0, 0, width, height-1)

	helpLine := widgets.NewParagraph()
	helpLine.Text = "[ESC/q:](fg:black) Quit [|](fg:white,bg:black) " +
		"[h/?:](fg:black) Help [|](fg:white,bg:black) " +
		view.Status(columns)
	helpLine.Border = false
	helpLine.TextStyle = boxTitleStyle
	helpLine.SetRect(0, height-1, width, height)

	ui.Render(plot, helpLine)
}

func renderHelpScreen() {
	width, height := termui.TerminalDimensions()

	frame := widgets.NewParagraph()
	frame.Title = "  Help / Keys  "
	frame.TitleStyle = boxTitleStyle
	frame.SetRect(0, 0, width, height)

	keys := widgets.NewList()
	keys.Border = false
	keys.TextStyle = termui.NewStyle(termui.ColorYellow)
	keys.SelectedRowStyle = termui.NewStyle(termui.ColorCyan)

	keys.Rows = append(keys.Rows, "Keys:")
	keys.Rows = append(keys.Rows, " h, F1, ?:          [This help-page](fg:white)")
	keys.Rows = append(keys.Rows, " ESC, q, CTRL-C:    [Quit scope / exit help](fg:white)")
	keys.Rows = append(keys.Rows, " Left, Right:       [Scroll a quarter screen](fg:white)")
	keys.Rows = append(keys.Rows, " PgUp, PgDn:        [Scroll a full screen](fg:white)")
	keys.Rows = append(keys.Rows, " +, Up:             [Zoom in](fg:white)")
	keys.Rows = append(keys.Rows, " -, Down:           [Zoom out](fg:white)")
	keys.Rows = append(keys.Rows, " g, Home:           [First frame](fg:white)")
	keys.Rows = append(keys.Rows, " G, End:            [Last frame](fg:white)")
	keys.Rows = append(keys.Rows, "")
	keys.Rows = append(keys.Rows, "[Green](fg:green) is the left channel, [yellow](fg:yellow) the right.")
	keys.SetRect(1, 1, width-1, height-1)

	ui.Render(frame, keys)
}
