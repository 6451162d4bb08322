package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/database"
	"github.com/projectblurimedia/Veggie-Tracker/internal/logger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
	"github.com/projectblurimedia/Veggie-Tracker/internal/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		return database.Migrate(db)
	},
}

var newUser service.RegisterRequest

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an operator account",
	Example: `  veggie-tracker create-user --username ravi --password secret1 \
    --firstname Ravi --lastname Kumar --admin`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		users := service.NewUserService(repository.NewUserRepository(db), cfg.JWTSecret, time.Hour)
		res, err := users.Register(cmd.Context(), newUser)
		if err != nil {
			return err
		}
		log := logger.WithComponent("cli")
		log.Info().
			Str("username", res.User.Username).
			Bool("admin", res.User.IsAdmin).
			Msg("user created")
		return nil
	},
}

var catalogFile string

var seedItemsCmd = &cobra.Command{
	Use:   "seed-items",
	Short: "Load produce names from a YAML catalog file",
	Long: `seed-items reads a YAML file of the form

  items:
    - Tomato
    - Green Chilli

and adds every name that is not in the catalog yet.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(catalogFile)
		if err != nil {
			return err
		}
		defer f.Close()

		names, err := parseCatalog(f)
		if err != nil {
			return err
		}

		_, db, err := bootstrap()
		if err != nil {
			return err
		}
		items := service.NewItemService(repository.NewItemRepository(db))
		res, err := items.CreateItems(cmd.Context(), service.BulkCreateItemsRequest{Items: names})
		if err != nil {
			return err
		}
		log := logger.WithComponent("cli")
		log.Info().
			Int("created", len(res.Created)).
			Int("skipped", len(res.Skipped)).
			Msg("catalog seeded")
		return nil
	},
}

type catalog struct {
	Items []string `yaml:"items"`
}

func parseCatalog(r io.Reader) ([]string, error) {
	var c catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("catalog has no items")
	}
	return c.Items, nil
}

func init() {
	createUserCmd.Flags().StringVar(&newUser.Username, "username", "", "login name")
	createUserCmd.Flags().StringVar(&newUser.Password, "password", "", "password, at least 6 characters")
	createUserCmd.Flags().StringVar(&newUser.FirstName, "firstname", "", "first name")
	createUserCmd.Flags().StringVar(&newUser.LastName, "lastname", "", "last name")
	createUserCmd.Flags().BoolVar(&newUser.IsAdmin, "admin", false, "grant admin rights")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")

	seedItemsCmd.Flags().StringVarP(&catalogFile, "file", "f", "items.yaml", "YAML catalog file")
}
