package mongo

import (
	"reflect"
	"testing"

	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNutritionFileQuery(t *testing.T) {
	trainee := primitive.NewObjectID()
	trainer := primitive.NewObjectID()

	cases := []struct {
		name   string
		filter repository.NutritionFileFilter
		want   bson.M
	}{
		{
			name:   "admin lists everything",
			filter: repository.NutritionFileFilter{},
			want:   bson.M{},
		},
		{
			name:   "trainer lists own uploads",
			filter: repository.NutritionFileFilter{UploadedBy: &trainer},
			want:   bson.M{"uploadedBy": trainer},
		},
		{
			name:   "trainee without trainer sees targeted files only",
			filter: repository.NutritionFileFilter{ForTrainee: &trainee},
			want: bson.M{"$or": bson.A{
				bson.M{"traineeId": trainee},
			}},
		},
		{
			name:   "trainee with trainer also sees the trainer's untargeted files",
			filter: repository.NutritionFileFilter{ForTrainee: &trainee, SharedBy: &trainer},
			want: bson.M{"$or": bson.A{
				bson.M{"traineeId": trainee},
				bson.M{"uploadedBy": trainer, "traineeId": nil},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nutritionFileQuery(tc.filter); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("query = %v, want %v", got, tc.want)
			}
		})
	}
}
