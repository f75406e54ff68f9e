package biolink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/saadjs/biolink/internal/classifier"
	"github.com/saadjs/biolink/internal/service"
	"github.com/spf13/cobra"
)

var logInputImage string

var logInputCmd = &cobra.Command{
	Use:   "log-input [text...]",
	Short: "Describe a meal or workout (or pass a photo) and let the AI log it",
	Example: `  biolink log-input "two eggs and a slice of toast"
  biolink log-input "45 min spin class"
  biolink log-input --image lunch.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := buildClassifierInput(args, logInputImage)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			out, err := rt.session.LogInput(ctx, rt.ai(), in)
			if err != nil {
				var failure classifier.Failure
				if errors.As(err, &failure) || errors.Is(err, service.ErrClassificationPending) {
					return fmt.Errorf("%w (nothing was logged; try again)", err)
				}
				return err
			}
			w := cmd.OutOrStdout()
			switch {
			case out.Food != nil:
				n := out.Food.Nutrients
				fmt.Fprintf(w, "Logged %s as %s on %s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
					out.Food.Name, out.Food.Category, out.Date, n.Calories, n.ProteinG, n.CarbsG, n.FatG)
				fmt.Fprintf(w, "Entry ID: %s\n", out.Food.ID)
			case out.Exercise != nil:
				fmt.Fprintf(w, "Logged exercise %s on %s: %.0f kcal burned\n", out.Exercise.Name, out.Date, out.Exercise.CaloriesBurned)
				fmt.Fprintf(w, "Entry ID: %s\n", out.Exercise.ID)
			}
			return nil
		})
	},
}

func buildClassifierInput(args []string, imagePath string) (classifier.Input, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" {
		if text == "" {
			return classifier.Input{}, fmt.Errorf("describe a meal or workout, or pass --image")
		}
		return classifier.Input{Text: text}, nil
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return classifier.Input{}, fmt.Errorf("read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return classifier.Input{}, fmt.Errorf("%s does not look like an image (%s)", imagePath, mimeType)
	}
	return classifier.Input{Text: text, Image: data, MIMEType: mimeType}, nil
}

func init() {
	rootCmd.AddCommand(logInputCmd)
	logInputCmd.Flags().StringVar(&logInputImage, "image", "", "Path to a photo of a meal or a workout summary")
}
