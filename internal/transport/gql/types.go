package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"
)

// idField serializes uuid.UUID (and any other fmt.Stringer) through the
// default struct resolver, which matches on json tags.
func idField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.ID,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			v, err := graphql.DefaultResolveFn(p)
			if err != nil || v == nil {
				return v, err
			}
			if s, ok := v.(fmt.Stringer); ok {
				return s.String(), nil
			}
			return v, nil
		},
	}
}

var userSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "UserSummary",
	Description: "Public fields of a user, as listed in follower graphs.",
	Fields: graphql.Fields{
		"_id":      idField(),
		"name":     &graphql.Field{Type: graphql.String},
		"username": &graphql.Field{Type: graphql.String},
		"email":    &graphql.Field{Type: graphql.String},
	},
})

// userType never exposes the password hash: domain.User tags it json:"-".
var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"_id":       idField(),
		"name":      &graphql.Field{Type: graphql.String},
		"username":  &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"followers": &graphql.Field{Type: graphql.NewList(userSummaryType)},
		"following": &graphql.Field{Type: graphql.NewList(userSummaryType)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var commentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Comment",
	Fields: graphql.Fields{
		"content":   &graphql.Field{Type: graphql.String},
		"username":  &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var likeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Like",
	Fields: graphql.Fields{
		"username":  &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var postType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Post",
	Fields: graphql.Fields{
		"_id":           idField(),
		"content":       &graphql.Field{Type: graphql.String},
		"tags":          &graphql.Field{Type: graphql.NewList(graphql.String)},
		"imgUrl":        &graphql.Field{Type: graphql.String},
		"authorId":      idField(),
		"authorDetails": &graphql.Field{Type: userType},
		"comments":      &graphql.Field{Type: graphql.NewList(commentType)},
		"likes":         &graphql.Field{Type: graphql.NewList(likeType)},
		"createdAt":     &graphql.Field{Type: graphql.DateTime},
		"updatedAt":     &graphql.Field{Type: graphql.DateTime},
	},
})

var followType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Follow",
	Fields: graphql.Fields{
		"_id":         idField(),
		"followerId":  idField(),
		"followingId": idField(),
		"createdAt":   &graphql.Field{Type: graphql.DateTime},
		"updatedAt":   &graphql.Field{Type: graphql.DateTime},
	},
})

var registerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RegisterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
