package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
)

// modelingScript é a lição offline: modela recursos de nuvem com tipos
// locais para ensinar interfaces, embedding e receptores sem tocar a conta.
func (uc *WorkshopUseCase) modelingScript() *lessonScript {
	return &lessonScript{
		info: entity.LessonInfo{
			Number:  5,
			Command: "modeling",
			Title:   "Modeling With Types",
			Teaches: "interfaces, embedding, receivers and Stringer",
		},
		build: uc.modelingConcepts,
		takeaways: []string{
			"Interfaces are satisfied implicitly; the implementing type never names them.",
			"Embedding shares fields and methods without inheritance.",
			"Pointer receivers mutate, value receivers work on copies. Pick one per type.",
			"Implement String() and every %v of your type becomes readable.",
		},
	}
}

// cloudResource is the behaviour every modeled resource in this lesson shares.
type cloudResource interface {
	ResourceID() string
	MonthlyCost() float64
}

// baseResource holds the fields every resource has. Types embed it.
type baseResource struct {
	id     string
	region string
}

func (b baseResource) ResourceID() string { return b.id }

type modelInstance struct {
	baseResource
	instanceType string
	hoursUp      float64
}

func (i modelInstance) MonthlyCost() float64 {
	rates := map[string]float64{"t3.micro": 0.0104, "m5.large": 0.096, "r5.xlarge": 0.252}
	return rates[i.instanceType] * i.hoursUp
}

func (i modelInstance) String() string {
	return fmt.Sprintf("EC2 %s (%s in %s)", i.id, i.instanceType, i.region)
}

type modelBucket struct {
	baseResource
	gbStored float64
}

func (b modelBucket) MonthlyCost() float64 {
	return b.gbStored * 0.023
}

func (b modelBucket) String() string {
	return fmt.Sprintf("S3 %s (%.0f GB in %s)", b.id, b.gbStored, b.region)
}

// Grow usa receptor ponteiro de propósito: é o único jeito de mutar o bucket.
func (b *modelBucket) Grow(gb float64) {
	b.gbStored += gb
}

var errMissingRegion = errors.New("resource has no region")

func validateResource(r cloudResource) error {
	type regioned interface{ regionOf() string }
	if v, ok := r.(regioned); ok && v.regionOf() == "" {
		return fmt.Errorf("validate %s: %w", r.ResourceID(), errMissingRegion)
	}
	return nil
}

func (b baseResource) regionOf() string { return b.region }

func (uc *WorkshopUseCase) modelingConcepts(env *lessonEnv) []concept {
	fleet := []cloudResource{
		modelInstance{baseResource{"i-0f3a91c2", "us-east-1"}, "m5.large", 720},
		modelInstance{baseResource{"i-0b77e4d1", "us-east-1"}, "t3.micro", 720},
		modelBucket{baseResource{"media-archive", "eu-west-1"}, 512},
	}

	return []concept{
		{
			title: "Define behaviour with an interface",
			run: func(ctx context.Context) error {
				uc.say("cloudResource asks for two methods. Nothing declares 'implements'; having the methods is enough.")

				var total float64
				for _, r := range fleet {
					uc.console.Printf("  %-40v $%8.2f/month\n", r, r.MonthlyCost())
					total += r.MonthlyCost()
				}
				uc.console.Printf("  %-40s $%8.2f/month\n", "TOTAL", total)

				uc.say("The loop never asks what each element is. That is the whole point.")
				return nil
			},
		},
		{
			title: "Share fields with embedding",
			run: func(ctx context.Context) error {
				uc.say("modelInstance embeds baseResource, so its fields and methods are promoted:")

				inst := fleet[0].(modelInstance)
				uc.console.Printf("inst.ResourceID() => %s (defined on baseResource)\n", inst.ResourceID())
				uc.console.Printf("inst.id           => %s (field reached through the embed)\n", inst.id)
				uc.console.Printf("%%+v shows the nesting => %+v\n", inst)

				uc.say("Embedding composes; there is no override chain to trace.")
				return nil
			},
		},
		{
			title: "Pointer vs value receivers",
			run: func(ctx context.Context) error {
				bucket := modelBucket{baseResource{"scratch-data", "us-east-1"}, 100}
				uc.console.Printf("before: %v costs $%.2f/month\n", bucket, bucket.MonthlyCost())

				uc.say("MonthlyCost has a value receiver: it reads a copy. Grow takes a pointer:")
				bucket.Grow(400)
				uc.console.Printf("after Grow(400): %v costs $%.2f/month\n", bucket, bucket.MonthlyCost())

				uc.say("Had Grow used a value receiver, the 400 GB would vanish with the copy.")

				// Interfaces guardam o valor concreto; um *modelBucket também satisfaz
				// cloudResource, e só ele enxerga os métodos de ponteiro.
				var r cloudResource = &bucket
				uc.console.Printf("through the interface: %v\n", r)
				return nil
			},
		},
		{
			title: "fmt.Stringer is a contract",
			run: func(ctx context.Context) error {
				uc.say("Both model types implement String(), so %%v stops printing field soup:")
				uc.console.Printf("with String():    %v\n", fleet[2])
				uc.console.Printf("raw struct (%%#v): %#v\n", fleet[2])

				uc.say("A type switch recovers the concrete type when you really need it:")
				for _, r := range fleet {
					switch v := r.(type) {
					case modelInstance:
						uc.console.Printf("  %s is an instance of type %s\n", v.id, v.instanceType)
					case modelBucket:
						uc.console.Printf("  %s is a bucket holding %.0f GB\n", v.id, v.gbStored)
					default:
						uc.console.Printf("  %s is something new\n", r.ResourceID())
					}
				}
				return nil
			},
		},
		{
			title: "Errors are values",
			run: func(ctx context.Context) error {
				uc.say("Validation returns an error instead of raising one. Callers decide what to do.")

				broken := modelBucket{baseResource{id: "no-region-bucket"}, 10}
				for _, r := range []cloudResource{fleet[0], broken} {
					if err := validateResource(r); err != nil {
						uc.console.LogError("%s", err)
						if errors.Is(err, errMissingRegion) {
							uc.say("errors.Is saw errMissingRegion through the %%w wrapping.")
						}
						continue
					}
					uc.console.LogSuccess("%s is valid.", r.ResourceID())
				}
				return nil
			},
		},
	}
}
