package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"time"

	"github.com/rishiparsad75/pixland-face-service/internal/config"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Short: "Warm up the recognition backend",
	Long: `Send a synthetic face-like image to a running face service to trigger
model loading on the recognition backend. The first extraction after a cold
start can take tens of seconds to minutes; running warmup right after deploy
moves that cost off the first real request.

A NO_FACE_DETECTED response counts as success: it proves the model is loaded
and answering, the synthetic image just isn't convincing enough.`,
	RunE: runWarmup,
}

func init() {
	rootCmd.AddCommand(warmupCmd)

	warmupCmd.Flags().String("url", "", "Base URL of the running service (defaults to http://localhost:$PORT)")
	warmupCmd.Flags().Duration("timeout", 2*time.Minute, "Request timeout (model loading is slow on cold start)")
}

// syntheticFace draws a face-like image: head oval, eyes, nose, mouth.
// Enough structure for a detector to have a chance, cheap enough to
// generate anywhere.
func syntheticFace() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))

	skin := color.RGBA{240, 200, 160, 255}
	head := color.RGBA{220, 175, 140, 255}
	dark := color.RGBA{50, 30, 20, 255}
	nose := color.RGBA{190, 140, 110, 255}
	mouth := color.RGBA{140, 80, 80, 255}

	// Background.
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			img.SetRGBA(x, y, skin)
		}
	}

	fillEllipse(img, image.Rect(80, 60, 320, 340), head)   // head
	fillEllipse(img, image.Rect(130, 140, 170, 175), dark) // left eye
	fillEllipse(img, image.Rect(230, 140, 270, 175), dark) // right eye
	fillTriangle(img, 200, 190, 185, 230, 215, 230, nose)  // nose
	fillEllipse(img, image.Rect(160, 255, 240, 275), mouth)

	return img
}

// fillEllipse fills the ellipse inscribed in rect.
func fillEllipse(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// fillTriangle fills the triangle (x1,y1)-(x2,y2)-(x3,y3) by scanline.
func fillTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3 int, c color.RGBA) {
	minX := min(x1, min(x2, x3))
	maxX := max(x1, max(x2, x3))
	minY := min(y1, min(y2, y3))
	maxY := max(y1, max(y2, y3))

	sign := func(ax, ay, bx, by, px, py int) int {
		return (px-bx)*(ay-by) - (ax-bx)*(py-by)
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d1 := sign(x1, y1, x2, y2, x, y)
			d2 := sign(x2, y2, x3, y3, x, y)
			d3 := sign(x3, y3, x1, y1, x, y)
			hasNeg := d1 < 0 || d2 < 0 || d3 < 0
			hasPos := d1 > 0 || d2 > 0 || d3 > 0
			if !(hasNeg && hasPos) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func runWarmup(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	baseURL, err := cmd.Flags().GetString("url")
	if err != nil {
		return fmt.Errorf("reading url flag: %w", err)
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("reading timeout flag: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, syntheticFace(), &jpeg.Options{Quality: 95}); err != nil {
		return fmt.Errorf("encoding synthetic face: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	fmt.Printf("Warming up %s (first run loads model weights, may take %s)\n", baseURL, timeout)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("waiting for backend"),
		progressbar.OptionSpinnerType(14),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	client := &http.Client{Timeout: timeout}
	start := time.Now()
	resp, err := client.Post(baseURL+"/extract", "application/json", bytes.NewReader(body))
	close(done)
	_ = bar.Finish()
	fmt.Println()

	if err != nil {
		return fmt.Errorf("warmup request failed: %w", err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start).Round(100 * time.Millisecond)

	switch resp.StatusCode {
	case http.StatusOK:
		var result struct {
			EmbeddingDim int    `json:"embedding_dim"`
			FaceCount    int    `json:"face_count"`
			Model        string `json:"model"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("parsing warmup response: %w", err)
		}
		fmt.Printf("Warmup OK in %s: model %s, %d face(s), %d-dim embedding\n",
			elapsed, result.Model, result.FaceCount, result.EmbeddingDim)
		return nil

	case http.StatusUnprocessableEntity:
		// Model is loaded and answering; the synthetic face just didn't pass.
		fmt.Printf("Warmup OK in %s: model loaded (no face found in synthetic image, which is fine)\n", elapsed)
		return nil

	default:
		return fmt.Errorf("warmup failed: service returned HTTP %d", resp.StatusCode)
	}
}
