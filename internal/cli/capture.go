package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/pkg/utils"
)

var (
	captureDisplay string
	captureOut     string
	captureCopy    bool
	captureSave    bool
	captureJSON    bool
)

var captureCmd = &cobra.Command{
	Use:   "capture [fullscreen|display|window|region] [source-id|geometry]",
	Short: "Take a one-shot capture",
	Long: `capture grabs a frame and runs the normal pipeline: save to the output
folder, optional clipboard copy, history entry, notification. Without
arguments it captures the primary display.

  grab capture
  grab capture display screen:1
  grab capture window window:4242
  grab capture region "100,80 640x480" --display screen:0

Region geometry follows slurp: "X,Y WxH" (the comma form X,Y,WxH works
too). Source IDs come from "grab sources".`,
	Args: cobra.MaximumNArgs(2),
	Run:  runCaptureShot,
}

func init() {
	captureCmd.Flags().StringVar(&captureDisplay, "display", "", "Display ID for region captures (default primary)")
	captureCmd.Flags().StringVar(&captureOut, "out", "", "Override the output folder for this capture")
	captureCmd.Flags().BoolVar(&captureCopy, "copy", true, "Copy to the clipboard (overrides preference)")
	captureCmd.Flags().BoolVar(&captureSave, "save", true, "Save to the output folder (overrides preference)")
	captureCmd.Flags().BoolVar(&captureJSON, "json", false, "Print the capture result as JSON")
	rootCmd.AddCommand(captureCmd)
}

func runCaptureShot(cmd *cobra.Command, args []string) {
	svc, cleanup, err := buildServices()
	if err != nil {
		fail("preparing capture", err)
	}
	defer cleanup()

	prefs := svc.prefs.Get()
	if cmd.Flags().Changed("copy") {
		prefs.CopyToClipboard = captureCopy
	}
	if cmd.Flags().Changed("save") {
		prefs.SaveToDisk = captureSave
	}
	if captureOut != "" {
		prefs.OutputFolder = utils.ExpandPath(captureOut)
		prefs.SaveToDisk = true
	}

	mode := "fullscreen"
	if len(args) > 0 {
		mode = args[0]
	}

	var (
		img  *image.RGBA
		meta model.CaptureMetadata
	)
	switch mode {
	case "fullscreen", "full-screen":
		img, meta, err = svc.engine.CaptureFullScreen()
	case "display":
		if len(args) > 1 {
			img, meta, err = svc.engine.CaptureDisplay(args[1])
		} else {
			img, meta, err = svc.engine.CaptureFullScreen()
		}
	case "window":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: window capture needs a source ID (see \"grab sources --windows\")")
			os.Exit(1)
		}
		img, meta, err = svc.engine.CaptureWindow(args[1])
	case "region":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: region capture needs geometry, e.g. \"100,80 640x480\"")
			os.Exit(1)
		}
		var region model.RegionBounds
		region, err = parseRegion(args[1])
		if err == nil {
			img, meta, err = svc.engine.CaptureRegion(region, captureDisplay)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown capture mode %q (want fullscreen, display, window, or region)\n", mode)
		os.Exit(1)
	}
	if err != nil {
		fail("capturing", err)
	}

	res, err := svc.processor.Process(img, meta, prefs)
	if err != nil {
		fail("processing capture", err)
	}

	if captureJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
		return
	}
	switch {
	case res.FilePath != "" && res.CopiedToClipboard:
		fmt.Printf("Saved to %s and copied to clipboard\n", utils.DisplayPath(res.FilePath))
	case res.FilePath != "":
		fmt.Printf("Saved to %s\n", utils.DisplayPath(res.FilePath))
	case res.CopiedToClipboard:
		fmt.Println("Copied to clipboard")
	default:
		fmt.Println("Capture discarded (saving and clipboard are both off)")
	}
}

// parseRegion accepts the slurp/grim geometry form "X,Y WxH" and the
// all-comma form "X,Y,WxH".
func parseRegion(s string) (model.RegionBounds, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), " ", ",")
	parts := strings.Split(norm, ",")
	if len(parts) != 3 {
		return model.RegionBounds{}, fmt.Errorf("region %q: want \"X,Y WxH\"", s)
	}

	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.RegionBounds{}, fmt.Errorf("region x %q: %w", parts[0], err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.RegionBounds{}, fmt.Errorf("region y %q: %w", parts[1], err)
	}

	dims := strings.SplitN(strings.ToLower(parts[2]), "x", 2)
	if len(dims) != 2 {
		return model.RegionBounds{}, fmt.Errorf("region size %q: want WxH", parts[2])
	}
	w, err := strconv.ParseUint(dims[0], 10, 32)
	if err != nil {
		return model.RegionBounds{}, fmt.Errorf("region width %q: %w", dims[0], err)
	}
	h, err := strconv.ParseUint(dims[1], 10, 32)
	if err != nil {
		return model.RegionBounds{}, fmt.Errorf("region height %q: %w", dims[1], err)
	}

	return model.RegionBounds{X: x, Y: y, Width: uint(w), Height: uint(h)}, nil
}
