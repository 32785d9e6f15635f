// Command vox2qef converts a MagicaVoxel .vox file to the Qubicle
// Exchange Format, translating world coordinates to the scene's
// bounding box minimum corner (QEF has no negative coordinates).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dpirch/voxflat"
)

const maxCount = 256

func vox2qef(inPath, outPath string) error {
	h, err := voxflat.OpenFile(inPath)
	if err != nil {
		return err
	}
	defer h.Close()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprint(w, "Qubicle Exchange Format\nVersion 0.2\nwww.minddesk.com\n")

	bounds := h.CalculateBounds()
	sizeX := bounds.Max[0] - bounds.Min[0] + 1
	sizeY := bounds.Max[1] - bounds.Min[1] + 1
	sizeZ := bounds.Max[2] - bounds.Min[2] + 1
	fmt.Fprintf(w, "%d %d %d\n", sizeX, sizeY, sizeZ)

	palette := h.GetPalette()
	fmt.Fprintln(w, "255")
	for i := 1; i < 256; i++ {
		c := palette[i]
		fmt.Fprintf(w, "%.6f %.6f %.6f\n", float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0)
	}

	xyz := make([][3]int32, maxCount)
	colorIdx := make([]uint8, maxCount)
	for {
		n, err := h.ReadXYZColorIndex(xyz, colorIdx)
		for i := 0; i < n; i++ {
			if colorIdx[i] == 0 {
				continue
			}
			posX := xyz[i][0] - bounds.Min[0]
			posY := xyz[i][1] - bounds.Min[1]
			posZ := xyz[i][2] - bounds.Min[2]
			fmt.Fprintf(w, "%d %d %d %d 126\n", posX, posY, posZ, colorIdx[i]-1)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func main() {
	cmd := &cobra.Command{
		Use:   "vox2qef <input.vox> [output.qef]",
		Short: "Convert a MagicaVoxel vox file to Qubicle Exchange Format",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := ""
			if len(args) == 2 {
				outPath = args[1]
			}
			return vox2qef(args[0], outPath)
		},
	}
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		log.Fatalf("vox2qef: %v", err)
	}
}
