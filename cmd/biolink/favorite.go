package biolink

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite foods",
}

var (
	favoriteName      string
	favoriteNutrients model.Nutrients
	favoriteJSON      bool
)

var favoriteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a favorite food",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(favoriteName) == "" {
			return fmt.Errorf("--name is required")
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			var saved model.FavoriteEntry
			if _, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				next, fav, err := service.AddFavorite(st, model.FoodEntry{Name: favoriteName, Nutrients: favoriteNutrients})
				saved = fav
				return next, err
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved favorite %s (%s)\n", saved.Name, saved.ID)
			return nil
		})
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			favs := rt.session.State().Favorites
			if favoriteJSON {
				return printJSON(cmd, favs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL\tP\tC\tF")
			for _, f := range favs {
				n := f.Nutrients
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", f.ID, f.Name, n.Calories, n.ProteinG, n.CarbsG, n.FatG)
			}
			return nil
		})
	},
}

var (
	favoriteUseCategory string
	favoriteUseDate     string
	favoriteUseTime     string
)

var favoriteUseCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Log a favorite as a new food entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := service.ParseMealCategory(favoriteUseCategory)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			fav, err := service.ResolveFavorite(rt.session.State(), args[0])
			if err != nil {
				return err
			}
			dateKey, err := resolveDateKey(rt.session, favoriteUseDate)
			if err != nil {
				return err
			}
			at, err := entryTime(rt.session, dateKey, favoriteUseTime)
			if err != nil {
				return err
			}
			entry := service.InstantiateFavorite(fav, at)
			entry.Category = category
			if _, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.AddFoodEntry(st, dateKey, entry)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s as entry %s\n", fav.Name, entry.ID)
			return nil
		})
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove <id|name>",
	Short: "Delete a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			fav, err := service.ResolveFavorite(rt.session.State(), args[0])
			if err != nil {
				return err
			}
			if _, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.RemoveFavorite(st, fav.ID)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed favorite %s\n", fav.Name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteAddCmd, favoriteListCmd, favoriteUseCmd, favoriteRemoveCmd)

	favoriteAddCmd.Flags().StringVar(&favoriteName, "name", "", "Favorite name")
	addNutrientFlags(favoriteAddCmd, &favoriteNutrients)
	favoriteListCmd.Flags().BoolVar(&favoriteJSON, "json", false, "Output as JSON")
	favoriteUseCmd.Flags().StringVar(&favoriteUseCategory, "category", "snack", "breakfast|lunch|dinner|snack")
	favoriteUseCmd.Flags().StringVar(&favoriteUseDate, "date", "", "Date YYYY-MM-DD (default today)")
	favoriteUseCmd.Flags().StringVar(&favoriteUseTime, "time", "", "Time HH:MM")
}
