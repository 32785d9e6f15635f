// Command vox2txt converts a MagicaVoxel .vox file to the plain-text
// voxel format also emitted by Goxel: one "X Y Z RRGGBB" line per
// voxel, in scene traversal order.
package main

import (
	"bufio"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dpirch/voxflat"
)

const maxCount = 256

func vox2txt(inPath, outPath string) error {
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

	fmt.Fprintln(w, "# X Y Z RRGGBB")

	xyz := make([][3]int32, maxCount)
	rgba := make([]color.RGBA, maxCount)
	for {
		n, err := h.ReadXYZRGBA(xyz, rgba)
		for i := 0; i < n; i++ {
			fmt.Fprintf(w, "%d %d %d %02x%02x%02x\n", xyz[i][0], xyz[i][1], xyz[i][2], rgba[i].R, rgba[i].G, rgba[i].B)
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
		Use:   "vox2txt <input.vox> [output.txt]",
		Short: "Convert a MagicaVoxel vox file to text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := ""
			if len(args) == 2 {
				outPath = args[1]
			}
			return vox2txt(args[0], outPath)
		},
	}
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		log.Fatalf("vox2txt: %v", err)
	}
}
