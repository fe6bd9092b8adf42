package main

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atinyakov/saltpass/internal/client/batch"
	"github.com/atinyakov/saltpass/internal/client/prompt"
	"github.com/atinyakov/saltpass/internal/config"
	"github.com/atinyakov/saltpass/internal/logger"
	"github.com/atinyakov/saltpass/internal/saltpass"
	"github.com/atinyakov/saltpass/internal/service"
)

const longHelp = `Generate unique, secure passwords for all of the websites you visit based
on a single Master Password that you remember.

Start in interactive mode:

    $ saltpass

You will be prompted for your Master Password, Domain Name, Domain Phrase,
and algorithm of choice.

Start in interactive mode, but with a specific algorithm (you won't be
prompted for this):

    $ saltpass -a sha2

Advanced users: pipe in your master password followed by domain names and
phrases (tab separated, one per line) you want to use:

    $ cat tempfile
    some unguessable phrase
    example.com     myname
    example.net
    example.org     myfullname
    ^D
    $ saltpass < tempfile

The Master Password, Domain Name and (optionally) the Domain Phrase are
combined and hashed to generate a different Salted Password for each
website, using the SaltThePass scheme (https://saltthepass.com/).`

var (
	errKeepWithDomainName = errors.New("option --keep not compatible with --domain-name")
	errPhraseWithoutName  = errors.New("option --domain-phrase not sensible without --domain-name")
)

type rootFlags struct {
	algorithm    string
	domainName   string
	domainPhrase string
	keep         bool
	nul          bool
	standardize  bool
	configPath   string
	logLevel     string
}

// newRootCmd builds the saltpass command. interactive selects the prompt
// shell instead of batch mode.
func newRootCmd(interactive bool) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:           "saltpass",
		Short:         "Deterministic per-site passwords from a single master password",
		Long:          longHelp,
		Args:          cobra.NoArgs,
		Version:       cmp.Or(version, "N/A"),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f, interactive)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("saltpass\nVersion: {{.Version}}\nBuild Date: %s\n", cmp.Or(buildDate, "N/A")))

	fl := cmd.Flags()
	fl.StringVarP(&f.algorithm, "algorithm", "a", "",
		"The hashing algorithm to use. One of "+strings.Join(saltpass.Names(), ", ")+".")
	fl.StringVarP(&f.domainName, "domain-name", "n", "",
		"The Domain Name should match the website you're generating a password for.")
	fl.StringVarP(&f.domainPhrase, "domain-phrase", "p", "",
		"The Domain Phrase is an optional field that can be used to differentiate multiple passwords on the same website.")
	fl.BoolVarP(&f.keep, "keep", "k", false,
		"Continue to prompt for more passwords once the first has been returned.")
	fl.BoolVarP(&f.nul, "nul-separator", "0", false,
		"Output passwords null-separated. For use in scripting.")
	fl.BoolVar(&f.standardize, "standardize-domain", false,
		"Reduce URLs such as https://www.example.com/login to example.com before salting.")
	fl.StringVar(&f.configPath, "config", "", "Path to a YAML config file (default $"+config.EnvConfig+" or the user config dir).")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level for diagnostics on stderr: debug, info, warn, error.")

	return cmd
}

func run(cmd *cobra.Command, f *rootFlags, interactive bool) error {
	opts, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("algorithm") {
		alg, err := saltpass.Resolve(f.algorithm)
		if err != nil {
			return fmt.Errorf("option --algorithm: %w", err)
		}
		opts.Algorithm = string(alg)
	}
	if changed("keep") {
		opts.Keep = f.keep
	}
	if changed("nul-separator") {
		opts.NulSeparator = f.nul
	}
	if changed("standardize-domain") {
		opts.StandardizeDomain = f.standardize
	}
	if changed("log-level") {
		opts.Log.Level = f.logLevel
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr())
	if err := log.Init(opts.Log.Level); err != nil {
		return err
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	svc := service.NewSaltService(saltpass.Engine{}, zapLogger,
		service.WithStandardizeDomain(opts.StandardizeDomain))

	if interactive {
		if f.domainName != "" && opts.Keep {
			return errKeepWithDomainName
		}
		if f.domainName == "" && f.domainPhrase != "" {
			return errPhraseWithoutName
		}

		session := &prompt.Session{
			Prompter:         prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
			Salter:           svc,
			Out:              cmd.OutOrStdout(),
			DefaultAlgorithm: saltpass.Algorithm(opts.Algorithm),
			DomainName:       f.domainName,
			DomainPhrase:     f.domainPhrase,
			Keep:             opts.Keep,
		}
		if changed("algorithm") {
			session.Algorithm = saltpass.Algorithm(opts.Algorithm)
		}
		zapLogger.Debug("starting interactive session", zap.Bool("keep", opts.Keep))
		return session.Run()
	}

	runner := &batch.Runner{
		Salter:        svc,
		Algorithm:     saltpass.Algorithm(opts.Algorithm),
		NulSeparated:  opts.NulSeparator,
		DomainNameSet: f.domainName != "",
		Log:           zapLogger,
	}
	zapLogger.Debug("starting batch mode", zap.String("algorithm", opts.Algorithm))
	stats, err := runner.Run(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if stats.Rejected > 0 {
		zapLogger.Warn("some lines were rejected", zap.Int("rejected", stats.Rejected))
	}
	return nil
}
