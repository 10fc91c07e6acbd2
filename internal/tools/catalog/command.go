package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/kashmiricraft/treasures-api/internal/config"
	"github.com/kashmiricraft/treasures-api/internal/database"
	"github.com/kashmiricraft/treasures-api/internal/domain"
	"github.com/kashmiricraft/treasures-api/internal/security"
	"github.com/kashmiricraft/treasures-api/internal/tools/common"
)

type options struct {
	envFile string
	ci      bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{Use: "catalogctl", Short: "Catalog database and admin tooling"}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newHashPasswordCommand(opts),
		newListCommand(opts),
	)
	return cmd
}

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := func() ([]string, error) {
				_, db, err := loadConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				if err := database.Migrate(db); err != nil {
					return nil, err
				}
				return []string{"schema migrated"}, nil
			}()
			report(opts, "migrate", details, err)
			if err != nil {
				os.Exit(3)
			}
			return nil
		},
	}
}

func newSeedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the starter catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := func() ([]string, error) {
				_, db, err := loadConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				if err := database.Migrate(db); err != nil {
					return nil, err
				}
				rep, err := database.Seed(db)
				if err != nil {
					return nil, err
				}
				if rep.Noop {
					return []string{"catalog already seeded"}, nil
				}
				return []string{fmt.Sprintf("seeded %d products", rep.CreatedProducts)}, nil
			}()
			report(opts, "seed", details, err)
			if err != nil {
				os.Exit(3)
			}
			return nil
		},
	}
}

// catalogctl hash-password turns a plaintext password into the encoded hash
// expected by ADMIN_PASSWORD_HASH, so deployments never carry a plaintext
// admin password in their environment.
func newHashPasswordCommand(opts *options) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash an admin password for ADMIN_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := func() ([]string, error) {
				if strings.TrimSpace(password) == "" {
					return nil, fmt.Errorf("password is required")
				}
				hash, err := security.HashPassword(password)
				if err != nil {
					return nil, err
				}
				return []string{hash}, nil
			}()
			report(opts, "hash-password", details, err)
			if err != nil {
				os.Exit(3)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password to hash")
	return cmd
}

func newListCommand(opts *options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := func() ([]string, error) {
				_, db, err := loadConfigDB(opts.envFile)
				if err != nil {
					return nil, err
				}
				query := db.Model(&domain.Product{}).Order("created_at desc")
				if category != "" {
					query = query.Where("category = ?", category)
				}
				var products []domain.Product
				if err := query.Find(&products).Error; err != nil {
					return nil, err
				}
				details := make([]string, 0, len(products))
				for _, p := range products {
					details = append(details, fmt.Sprintf("%s  %-12s  %7.2f  %s", p.ID, p.Category, p.Price, p.Name))
				}
				if len(details) == 0 {
					details = []string{"no products"}
				}
				return details, nil
			}()
			report(opts, "list", details, err)
			if err != nil {
				os.Exit(3)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	return cmd
}

func report(opts *options, title string, details []string, err error) {
	if opts.ci {
		common.PrintCIResult(err == nil, title, details, err)
		return
	}
	common.PrintResult(title, details, err)
}

func loadConfigDB(envFile string) (*config.Config, *gorm.DB, error) {
	if err := common.LoadEnvFile(envFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
