/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	flash "github.com/allbin/fluidnc-flash"
	"github.com/allbin/fluidnc-flash/internal/ui/styles"
)

// devicesCmd represents the devices command
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List candidate upload ports",
	Long: `List the serial devices that could be used as upload port.

By default the list comes from "pio device list". With --local the operating
system is asked directly, which works without PlatformIO installed.

Devices whose description names a known USB-serial bridge (CP210x, CH340,
FTDI, ...) are marked with *; when exactly one is marked it is picked
automatically by the flash command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")
		tableFormat, _ := cmd.Flags().GetBool("table")
		jsonFormat, _ := cmd.Flags().GetBool("json")

		s := loadSettings(v)
		stdio := stdioOf(cmd)
		report := flash.NewReporter(stdio.Out)

		log, err := s.logger(stdio)
		if err != nil {
			report.Error(err)
			return err
		}

		var lister flash.DeviceLister = flash.LocalLister{}
		if !local {
			tc, err := s.toolchain(log)
			if err != nil {
				report.Error(err)
				return err
			}
			lister = tc
		}

		devices, err := lister.ListDevices(cmd.Context())
		if err != nil {
			report.Error(fmt.Errorf("listing devices: %w", err))
			return err
		}

		views := describeDevices(devices, s.resolver(lister, stdio, report, log))
		switch {
		case jsonFormat:
			return renderJSON(stdio.Out, views)
		case len(views) == 0:
			fmt.Fprintln(stdio.Out, "No serial ports found")
		case tableFormat:
			renderTable(stdio.Out, views, terminalWidth())
		default:
			renderSimple(stdio.Out, views)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().BoolP("local", "l", false, "Enumerate ports from the operating system instead of pio")
	devicesCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	devicesCmd.Flags().Bool("json", false, "Print the device list as JSON")
}

type deviceView struct {
	flash.Device
	Preferred bool `json:"preferred"`
}

func describeDevices(devices []flash.Device, r *flash.Resolver) []deviceView {
	views := make([]deviceView, 0, len(devices))
	for _, d := range devices {
		if d.Port == "" {
			continue
		}
		views = append(views, deviceView{Device: d, Preferred: r.IsPreferred(d)})
	}
	return views
}

func renderJSON(w io.Writer, views []deviceView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

// renderSimple prints one port per line
func renderSimple(w io.Writer, views []deviceView) {
	for _, d := range views {
		marker := " "
		if d.Preferred {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\n", marker, d.Port, d.Description)
	}
}

// renderTable renders the device list as a static table
func renderTable(w io.Writer, views []deviceView, width int) {
	fmt.Fprintf(w, "Found %d serial port(s):\n\n", len(views))

	portWidth := 16
	hwidWidth := 28
	markWidth := 3
	descWidth := width - portWidth - hwidWidth - markWidth - 8
	if descWidth < 20 {
		descWidth = 20
	}

	columns := []table.Column{
		{Title: "", Width: markWidth},
		{Title: "Port", Width: portWidth},
		{Title: "Description", Width: descWidth},
		{Title: "HWID", Width: hwidWidth},
	}

	rows := make([]table.Row, 0, len(views))
	for _, d := range views {
		marker := ""
		if d.Preferred {
			marker = "*"
		}
		rows = append(rows, table.Row{marker, d.Port, d.Description, d.HWID})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithWidth(width),
	)

	r := lipgloss.NewRenderer(w)
	s := table.DefaultStyles()
	s.Header = r.NewStyle().
		Bold(true).
		Foreground(styles.Mauve).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Surface1).
		BorderBottom(true).
		Padding(0, 1)
	s.Cell = r.NewStyle().Padding(0, 1)
	s.Selected = r.NewStyle()
	t.SetStyles(s)
	// header plus its bottom border
	t.SetHeight(len(rows) + 2)

	fmt.Fprintln(w, t.View())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 100
	}
	return width
}
