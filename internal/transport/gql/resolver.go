// Package gql exposes the domain services as a GraphQL schema.
package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/neubri/threads-clone/internal/auth"
	"github.com/neubri/threads-clone/internal/logging"
	"github.com/neubri/threads-clone/internal/service"
)

type Resolver struct {
	users   *service.UserService
	posts   *service.PostService
	follows *service.FollowService
	logger  *logging.Logger
}

func NewResolver(
	users *service.UserService,
	posts *service.PostService,
	follows *service.FollowService,
	logger *logging.Logger,
) *Resolver {
	return &Resolver{
		users:   users,
		posts:   posts,
		follows: follows,
		logger:  logger,
	}
}

type authedResolveFn func(p graphql.ResolveParams, caller *auth.Identity) (interface{}, error)

// public wraps a resolver that needs no caller identity.
func (r *Resolver) public(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, err := fn(p)
		if err != nil {
			return nil, r.translate(p.Context, p.Info.FieldName, err)
		}
		return v, nil
	}
}

// authed resolves the caller before running fn. Identity comes only from
// the bearer token, never from arguments.
func (r *Resolver) authed(fn authedResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		caller, err := auth.RequireIdentity(p.Context)
		if err != nil {
			return nil, r.translate(p.Context, p.Info.FieldName, err)
		}
		p.Context = logging.WithUserID(p.Context, caller.ID)

		v, err := fn(p, caller)
		if err != nil {
			return nil, r.translate(p.Context, p.Info.FieldName, err)
		}
		return v, nil
	}
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func optionalStringArg(args map[string]interface{}, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func stringListArg(args map[string]interface{}, name string) []string {
	raw, _ := args[name].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	return r.users.Login(p.Context, service.LoginInput{
		Email:    stringArg(p.Args, "email"),
		Password: stringArg(p.Args, "password"),
	})
}

func (r *Resolver) register(p graphql.ResolveParams) (interface{}, error) {
	in, _ := p.Args["newUser"].(map[string]interface{})
	return r.users.Register(p.Context, service.RegisterInput{
		Name:     stringArg(in, "name"),
		Username: stringArg(in, "username"),
		Email:    stringArg(in, "email"),
		Password: stringArg(in, "password"),
	})
}

func (r *Resolver) getUser(p graphql.ResolveParams, _ *auth.Identity) (interface{}, error) {
	return r.users.List(p.Context)
}

func (r *Resolver) getUserByID(p graphql.ResolveParams, _ *auth.Identity) (interface{}, error) {
	return r.users.GetProfile(p.Context, stringArg(p.Args, "userId"))
}

func (r *Resolver) getUserByName(p graphql.ResolveParams, _ *auth.Identity) (interface{}, error) {
	return r.users.SearchByUsername(p.Context, stringArg(p.Args, "username"))
}

func (r *Resolver) getPosts(p graphql.ResolveParams, _ *auth.Identity) (interface{}, error) {
	return r.posts.GetPosts(p.Context)
}

func (r *Resolver) getPostByID(p graphql.ResolveParams, _ *auth.Identity) (interface{}, error) {
	return r.posts.GetPostByID(p.Context, stringArg(p.Args, "postId"))
}

func (r *Resolver) createPost(p graphql.ResolveParams, caller *auth.Identity) (interface{}, error) {
	return r.posts.CreatePost(p.Context, caller.ID, service.CreatePostInput{
		Content: stringArg(p.Args, "content"),
		Tags:    stringListArg(p.Args, "tags"),
		ImgURL:  optionalStringArg(p.Args, "imgUrl"),
	})
}

func (r *Resolver) addComment(p graphql.ResolveParams, caller *auth.Identity) (interface{}, error) {
	return r.posts.AddComment(p.Context, stringArg(p.Args, "_id"), stringArg(p.Args, "content"), caller.Username)
}

func (r *Resolver) addLike(p graphql.ResolveParams, caller *auth.Identity) (interface{}, error) {
	return r.posts.AddLike(p.Context, stringArg(p.Args, "_id"), caller.Username)
}

func (r *Resolver) followUser(p graphql.ResolveParams, caller *auth.Identity) (interface{}, error) {
	return r.follows.FollowUser(p.Context, caller.ID, stringArg(p.Args, "followingId"))
}
