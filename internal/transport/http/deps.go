package http

import (
	"github.com/canopy-api/internal/application/auth"
	fileapp "github.com/canopy-api/internal/application/file"
	listingapp "github.com/canopy-api/internal/application/listing"
	"github.com/canopy-api/internal/application/session"
	"github.com/canopy-api/internal/infrastructure/directory"
	"github.com/canopy-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/canopy-api/internal/infrastructure/jwt"
	s3infra "github.com/canopy-api/internal/infrastructure/s3"
	"github.com/canopy-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router. S3Store, Mailer
// and JWTProvider may be nil; the affected endpoints then degrade per the
// wire contract instead of panicking.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	CollegeRepo *dynamo.CollegeRepo
	ListingRepo *dynamo.ListingRepo
	FileRepo    *dynamo.FileRepo
	Directory   *directory.Directory
	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}

// The concrete repos must keep satisfying the surfaces the services consume.
var (
	_ auth.UserStore      = (*dynamo.UserRepo)(nil)
	_ session.UserStore   = (*dynamo.UserRepo)(nil)
	_ auth.CollegeStore   = (*dynamo.CollegeRepo)(nil)
	_ listingapp.Store    = (*dynamo.ListingRepo)(nil)
	_ fileapp.Records     = (*dynamo.FileRepo)(nil)
	_ fileapp.ObjectStore = (*s3infra.Store)(nil)
)
