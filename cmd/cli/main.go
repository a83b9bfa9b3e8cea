package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	"github.com/faizm10/DressToImpress-sub000/pkg/database"
	"github.com/faizm10/DressToImpress-sub000/pkg/jwt"
	applogger "github.com/faizm10/DressToImpress-sub000/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cli add-staff -name NAME -email EMAIL -password PASSWORD [-config FILE]")
}

func main() {
	addStaffCmd := flag.NewFlagSet("add-staff", flag.ExitOnError)
	name := addStaffCmd.String("name", "", "display name")
	email := addStaffCmd.String("email", "", "sign-in email")
	password := addStaffCmd.String("password", "", "password, at least 8 characters")
	configPath := addStaffCmd.String("config", "", "path to config file")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-staff":
		addStaffCmd.Parse(os.Args[2:])
		if *name == "" || *email == "" || len(*password) < 8 {
			addStaffCmd.PrintDefaults()
			os.Exit(1)
		}
		if err := addStaff(*configPath, &dto.CreateStaffUserRequest{Name: *name, Email: *email, Password: *password}); err != nil {
			fmt.Fprintf(os.Stderr, "add-staff: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func addStaff(configPath string, req *dto.CreateStaffUserRequest) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return err
	}

	auth := service.NewAuthService(cfg, repository.NewRepository(db), jwt.NewManager(&cfg.Auth), nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	user, err := auth.CreateStaffUser(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("staff user %s (%s) created\n", user.Email, user.ID)
	return nil
}
