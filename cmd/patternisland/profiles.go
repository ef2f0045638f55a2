package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoStore = errors.New("statistics database is not available")

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles with saved progress",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runProfiles(); err != nil {
			fatal(err)
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a profile's saved progress",
	Long: `Deletes the saved statistics of the profile given by --profile.
Completion history is kept.

Examples:
  patternisland reset --profile ada`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReset(); err != nil {
			fatal(err)
		}
	},
}

func runProfiles() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.store == nil {
		return errNoStore
	}

	profiles, err := a.store.Profiles(context.Background())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No saved profiles yet.")
		return nil
	}
	for _, p := range profiles {
		fmt.Println(p)
	}
	return nil
}

func runReset() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.store == nil {
		return errNoStore
	}

	if err := a.store.DeleteStats(context.Background(), flagProfile); err != nil {
		return err
	}
	a.log.Info("profile reset", "profile", flagProfile)
	fmt.Printf("Progress of %q erased.\n", flagProfile)
	return nil
}
