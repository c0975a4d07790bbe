package main

import (
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/intent"
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/scorer"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/hash"
	"aqua-health-go/pkg/storage"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [symptom...]",
		Short: "Score symptoms (canonical ids or labels in --lang) against the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			svc := service.NewAnalysisService(i18n.NewLocalizer(rt.kb, rt.catalog), scorer.New(rt.kb), rt.composer, 0)
			resp, err := svc.Analyze(cmd.Context(), opts.lang, args)
			if err != nil {
				return err
			}
			return opts.printJSON(resp)
		},
	}
}

func newChatCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Resolve a chat message with the local intent resolver",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			svc := service.NewChatService(intent.NewResolver(rt.kb, intent.DefaultLexicon()), rt.composer, nil, "", nil)
			reply := svc.Reply(cmd.Context(), strings.Join(args, " "), opts.lang, nil)
			if asJSON {
				return opts.printJSON(reply)
			}
			_, err = fmt.Fprintln(opts.out, reply.Response)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print intent, disease and field along with the response")
	return cmd
}

func newKBCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Maintain knowledge base documents",
	}
	cmd.AddCommand(newKBValidateCmd(opts), newKBExportCmd(opts), newKBPushCmd(opts))
	return cmd
}

func newKBValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a knowledge base JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			kb, err := knowledge.Decode(f)
			if err != nil {
				var cfgErr *knowledge.ConfigError
				if errors.As(err, &cfgErr) {
					for _, p := range cfgErr.Problems {
						fmt.Fprintf(opts.out, "- %s\n", p)
					}
				}
				return err
			}
			_, err = fmt.Fprintf(opts.out, "ok: %d symptoms, %d diseases, base language %s\n",
				len(kb.Symptoms()), len(kb.Diseases()), kb.BaseLanguage())
			return err
		},
	}
}

func newKBExportCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the knowledge base as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" {
				return rt.kb.Encode(opts.out)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			return rt.kb.Encode(f)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file; stdout when empty")
	return cmd
}

func newKBPushCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload a knowledge base document to the configured MinIO bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg == nil {
				return errors.New("kb push requires --config")
			}

			kb := knowledge.Builtin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				if kb, err = knowledge.Decode(f); err != nil {
					return err
				}
			}
			var buf bytes.Buffer
			if err := kb.Encode(&buf); err != nil {
				return err
			}

			store, err := storage.NewObjectStore(cmd.Context(), cfg.MinIO)
			if err != nil {
				return err
			}
			if err := store.PutObject(cmd.Context(), cfg.Knowledge.ObjectName, buf.Bytes()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(opts.out, "pushed %s/%s\n", cfg.MinIO.BucketName, cfg.Knowledge.ObjectName)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to upload; the builtin knowledge base when empty")
	return cmd
}

func newHashPasswordCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash for admin.password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := hash.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(opts.out, hashed)
			return err
		},
	}
}
