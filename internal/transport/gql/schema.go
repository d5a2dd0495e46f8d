package gql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the public API. login and register are the only
// operations callable without a bearer token.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"password": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.public(r.login),
			},
			"getUser": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.authed(r.getUser),
			},
			"getUserById": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.authed(r.getUserByID),
			},
			"getUserByName": &graphql.Field{
				Type: graphql.NewList(userType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.authed(r.getUserByName),
			},
			"getPosts": &graphql.Field{
				Type:    graphql.NewList(postType),
				Resolve: r.authed(r.getPosts),
			},
			"getPostById": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.authed(r.getPostByID),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"newUser": &graphql.ArgumentConfig{Type: registerInputType},
				},
				Resolve: r.public(r.register),
			},
			"createPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"content": &graphql.ArgumentConfig{Type: graphql.String},
					"tags":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"imgUrl":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.authed(r.createPost),
			},
			"addComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"content": &graphql.ArgumentConfig{Type: graphql.String},
					"_id":     &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.authed(r.addComment),
			},
			"addLike": &graphql.Field{
				Type: likeType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.authed(r.addLike),
			},
			"followUser": &graphql.Field{
				Type: followType,
				Args: graphql.FieldConfigArgument{
					"followingId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.authed(r.followUser),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
