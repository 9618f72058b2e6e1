package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"edupath/internal/infra"
	"edupath/internal/models/db_models"
	"edupath/internal/models/request_models"
	"edupath/internal/repositories"
	"edupath/internal/services"
	"edupath/pkg/storage"
	"edupath/pkg/utils"
)

// SeedOutcome is one row of the seed summary.
type SeedOutcome struct {
	Name    string
	City    string
	Courses int
	ID      string
	Err     error
}

// NewSeedCollegesCmd imports colleges from a YAML file.
func NewSeedCollegesCmd(root *string) *cobra.Command {
	var (
		file       string
		adminEmail string
	)

	cmd := &cobra.Command{
		Use:   "seed-colleges",
		Short: "Import colleges from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := bootstrap(*root)
			if err != nil {
				return err
			}
			defer log.Sync()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()
			inputs, err := LoadCollegeSeed(f)
			if err != nil {
				return err
			}

			db, err := infra.OpenDatabase(conf.Database, log)
			if err != nil {
				return err
			}
			defer infra.CloseDatabase(db, log)
			if err := infra.Migrate(cmd.Context(), db, log); err != nil {
				return err
			}

			actor := services.Actor{Role: db_models.RoleAdmin}
			if adminEmail != "" {
				account, err := repositories.NewAccountRepository(db).FindByEmail(cmd.Context(), adminEmail)
				if err != nil {
					return err
				}
				if account == nil {
					return fmt.Errorf("no account with email %s", adminEmail)
				}
				actor.UserID = account.ID
			}

			var embeddingRepo repositories.CollegeEmbeddingRepository
			var embedder utils.Embedder
			if conf.Embedding.APIKey != "" && infra.SupportsVectors(db) && db.Migrator().HasTable(&db_models.CollegeEmbedding{}) {
				embeddingRepo = repositories.NewCollegeEmbeddingRepository(db)
				embedder = utils.NewOpenAIEmbeddingClient(conf.Embedding.APIKey, conf.Embedding.Model)
			}
			blobs, err := storage.NewFSStore(conf.Server.UploadDir)
			if err != nil {
				return err
			}
			svc := services.NewCollegeService(repositories.NewCollegeRepository(db), embeddingRepo, embedder, blobs, conf.Server.MaxUploadBytes, log)

			outcomes := SeedColleges(cmd.Context(), svc, actor, inputs, log)
			failed := PrintSeedSummary(cmd.OutOrStdout(), outcomes)
			if failed > 0 {
				return fmt.Errorf("%d of %d colleges failed to import", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/colleges.yaml", "YAML file with a list of colleges")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "record this account as the creator of the imported colleges")
	return cmd
}

// LoadCollegeSeed decodes a YAML list of colleges.
func LoadCollegeSeed(r io.Reader) ([]request_models.CollegeInput, error) {
	var inputs []request_models.CollegeInput
	if err := yaml.NewDecoder(r).Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed file is empty")
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return inputs, nil
}

// SeedColleges creates each college and keeps going past failures.
func SeedColleges(ctx context.Context, svc services.CollegeServiceInterface, actor services.Actor, inputs []request_models.CollegeInput, log *zap.Logger) []SeedOutcome {
	outcomes := make([]SeedOutcome, 0, len(inputs))
	for _, in := range inputs {
		out := SeedOutcome{Name: in.Name, City: in.Location.City, Courses: len(in.Courses)}
		created, err := svc.CreateCollege(ctx, actor, in)
		if err != nil {
			log.Warn("Failed to seed college", zap.String("name", in.Name), zap.Error(err))
			out.Err = err
		} else {
			out.ID = created.ID
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// PrintSeedSummary renders the outcomes as a table and returns the number
// of failures.
func PrintSeedSummary(w io.Writer, outcomes []SeedOutcome) int {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "City", "Courses", "Result"})
	table.SetAutoWrapText(false)

	failed := 0
	for _, o := range outcomes {
		result := color.GreenString("created %s", o.ID)
		if o.Err != nil {
			failed++
			result = color.RedString("failed: %v", o.Err)
		}
		table.Append([]string{o.Name, o.City, strconv.Itoa(o.Courses), result})
	}
	table.Render()

	summary := fmt.Sprintf("%d imported, %d failed", len(outcomes)-failed, failed)
	if failed > 0 {
		fmt.Fprintln(w, color.YellowString("%s", summary))
	} else {
		fmt.Fprintln(w, color.GreenString("%s", summary))
	}
	return failed
}
