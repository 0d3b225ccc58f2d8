package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2Types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"golang.org/x/sync/errgroup"

	"github.com/diillson/aws-workshop-go/internal/domain/entity"
	"github.com/diillson/aws-workshop-go/internal/domain/repository"
)

// AWSRepositoryImpl implementa repository.AWSRepository com cache de
// configs e de clientes por perfil/região/serviço.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria a implementação padrão do AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
}

// clientFactories amarra o nome do serviço ao construtor do cliente SDK.
var clientFactories = map[string]func(aws.Config) interface{}{
	"sts":            func(cfg aws.Config) interface{} { return sts.NewFromConfig(cfg) },
	"ec2":            func(cfg aws.Config) interface{} { return ec2.NewFromConfig(cfg) },
	"s3":             func(cfg aws.Config) interface{} { return s3.NewFromConfig(cfg) },
	"rds":            func(cfg aws.Config) interface{} { return rds.NewFromConfig(cfg) },
	"lambda":         func(cfg aws.Config) interface{} { return lambda.NewFromConfig(cfg) },
	"elbv2":          func(cfg aws.Config) interface{} { return elasticloadbalancingv2.NewFromConfig(cfg) },
	"cloudwatchlogs": func(cfg aws.Config) interface{} { return cloudwatchlogs.NewFromConfig(cfg) },
	"costexplorer":   func(cfg aws.Config) interface{} { return costexplorer.NewFromConfig(cfg) },
	"budgets":        func(cfg aws.Config) interface{} { return budgets.NewFromConfig(cfg) },
}

// Cost Explorer e Budgets são APIs globais atendidas em us-east-1,
// independente da região pedida.
var globalServices = map[string]bool{
	"costexplorer": true,
	"budgets":      true,
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	if globalServices[service] {
		region = "us-east-1"
	}
	cacheKey := profile + "/" + region + "/" + service

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	factory, ok := clientFactories[service]
	if !ok {
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}
	regional := cfg.Copy()
	if region != "" {
		regional.Region = region
	}

	client := factory(regional)
	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()
	return client, nil
}

// scanRegions abre um cliente do serviço em cada região e roda fn em
// paralelo. Região que falha fica de fora do resultado; as outras seguem.
func (r *AWSRepositoryImpl) scanRegions(ctx context.Context, profile, service string, regions []string, fn func(region string, client interface{})) {
	var wg sync.WaitGroup
	for _, region := range regions {
		wg.Add(1)
		go func(region string) {
			defer wg.Done()
			client, err := r.getServiceClient(ctx, profile, region, service)
			if err != nil {
				return
			}
			fn(region, client)
		}(region)
	}
	wg.Wait()
}

var profileHeader = regexp.MustCompile(`\[([^]]+)\]`)

// profileNames extrai os nomes de seção de um arquivo INI do AWS CLI.
// No ~/.aws/config as seções vêm como "[profile xyz]"; o prefixo cai fora.
func profileNames(path string) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var names []string
	for _, match := range profileHeader.FindAllStringSubmatch(string(content), -1) {
		names = append(names, strings.TrimPrefix(match[1], "profile "))
	}
	return names
}

// GetAWSProfiles junta os profiles de ~/.aws/credentials e ~/.aws/config.
// Sem nada configurado, devolve ao menos "default".
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}

	seen := make(map[string]bool)
	for _, file := range []string{"credentials", "config"} {
		for _, name := range profileNames(filepath.Join(home, ".aws", file)) {
			seen[name] = true
		}
	}
	if len(seen) == 0 {
		seen["default"] = true
	}

	profiles := make([]string, 0, len(seen))
	for name := range seen {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetAccountContext valida a sessão via STS e devolve a identidade completa.
func (r *AWSRepositoryImpl) GetAccountContext(ctx context.Context, profile string) (entity.AccountContext, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "sts")
	if err != nil {
		return entity.AccountContext{}, err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return entity.AccountContext{}, fmt.Errorf("error getting caller identity for profile %s: %w", profile, err)
	}

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return entity.AccountContext{}, err
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	return entity.AccountContext{
		Profile:   profile,
		AccountID: aws.ToString(result.Account),
		ARN:       aws.ToString(result.Arn),
		UserID:    aws.ToString(result.UserId),
		Region:    region,
	}, nil
}

func (r *AWSRepositoryImpl) getAccountID(ctx context.Context, profile string) (string, error) {
	acct, err := r.GetAccountContext(ctx, profile)
	if err != nil {
		return "", err
	}
	return acct.AccountID, nil
}

// GetRegions lista as regiões habilitadas para a conta, com o opt-in status.
func (r *AWSRepositoryImpl) GetRegions(ctx context.Context, profile string) ([]entity.RegionInfo, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "ec2")
	if err != nil {
		return nil, err
	}
	ec2Client := client.(*ec2.Client)

	regionsOutput, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("error describing regions for profile %s: %w", profile, err)
	}

	regions := make([]entity.RegionInfo, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		regions = append(regions, entity.RegionInfo{
			Name:        aws.ToString(region.RegionName),
			OptInStatus: aws.ToString(region.OptInStatus),
		})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Name < regions[j].Name })
	return regions, nil
}

func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	defaultRegions := []string{"us-east-1", "us-east-2", "us-west-1", "us-west-2", "eu-west-1", "eu-central-1"}

	client, err := r.getServiceClient(ctx, profile, "us-east-1", "ec2")
	if err != nil {
		return defaultRegions, fmt.Errorf("could not create EC2 client to list regions: %w", err)
	}
	ec2Client := client.(*ec2.Client)

	regionsOutput, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return defaultRegions, nil
	}

	accessibleRegions := make([]string, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		accessibleRegions = append(accessibleRegions, *region.RegionName)
	}
	return accessibleRegions, nil
}

// GetEC2Summary conta instâncias por estado somando todas as regiões pedidas.
func (r *AWSRepositoryImpl) GetEC2Summary(ctx context.Context, profile string, regions []string) (entity.EC2Summary, error) {
	summary := make(entity.EC2Summary)
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "ec2", regions, func(region string, client interface{}) {
		paginator := ec2.NewDescribeInstancesPaginator(client.(*ec2.Client), &ec2.DescribeInstancesInput{})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			for _, reservation := range page.Reservations {
				for _, instance := range reservation.Instances {
					summary[string(instance.State.Name)]++
				}
			}
			mu.Unlock()
		}
	})

	// A lição de maps consulta esses dois estados; garante as chaves.
	for _, state := range []string{"running", "stopped"} {
		if _, ok := summary[state]; !ok {
			summary[state] = 0
		}
	}
	return summary, nil
}

// GetInstances devolve a frota EC2 achatada em ResourceSummary, um item por
// instância, pronta para as lições de pipeline.
func (r *AWSRepositoryImpl) GetInstances(ctx context.Context, profile string, regions []string) ([]entity.ResourceSummary, error) {
	var instances []entity.ResourceSummary
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "ec2", regions, func(region string, client interface{}) {
		paginator := ec2.NewDescribeInstancesPaginator(client.(*ec2.Client), &ec2.DescribeInstancesInput{})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return
			}
			var batch []entity.ResourceSummary
			for _, reservation := range page.Reservations {
				for _, instance := range reservation.Instances {
					batch = append(batch, flattenInstance(instance, region))
				}
			}
			mu.Lock()
			instances = append(instances, batch...)
			mu.Unlock()
		}
	})

	sort.Slice(instances, func(i, j int) bool {
		if instances[i].Region != instances[j].Region {
			return instances[i].Region < instances[j].Region
		}
		return instances[i].ID < instances[j].ID
	})
	return instances, nil
}

// flattenInstance projeta a instância do SDK no ResourceSummary do domínio.
// O nome vem da tag Name; sem ela, o próprio ID serve.
func flattenInstance(instance ec2Types.Instance, region string) entity.ResourceSummary {
	summary := entity.ResourceSummary{
		ID:     aws.ToString(instance.InstanceId),
		Type:   string(instance.InstanceType),
		Region: region,
		State:  string(instance.State.Name),
		Tags:   make(map[string]string, len(instance.Tags)),
	}
	for _, tag := range instance.Tags {
		summary.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	summary.Name = summary.Tags["Name"]
	if summary.Name == "" {
		summary.Name = summary.ID
	}
	return summary
}

// GetStoppedInstances lista, por região, instâncias paradas que seguem
// cobrando EBS.
func (r *AWSRepositoryImpl) GetStoppedInstances(ctx context.Context, profile string, regions []string) (entity.StoppedEC2Instances, error) {
	stopped := make(entity.StoppedEC2Instances)
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "ec2", regions, func(region string, client interface{}) {
		out, err := client.(*ec2.Client).DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters: []ec2Types.Filter{{Name: aws.String("instance-state-name"), Values: []string{"stopped"}}},
		})
		if err != nil {
			return
		}

		var ids []string
		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				ids = append(ids, aws.ToString(instance.InstanceId))
			}
		}
		if len(ids) > 0 {
			mu.Lock()
			stopped[region] = ids
			mu.Unlock()
		}
	})
	return stopped, nil
}

// GetUnusedVolumes lista volumes EBS com status "available", ou seja, sem
// instância nenhuma.
func (r *AWSRepositoryImpl) GetUnusedVolumes(ctx context.Context, profile string, regions []string) (entity.UnusedVolumes, error) {
	unused := make(entity.UnusedVolumes)
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "ec2", regions, func(region string, client interface{}) {
		out, err := client.(*ec2.Client).DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
			Filters: []ec2Types.Filter{{Name: aws.String("status"), Values: []string{"available"}}},
		})
		if err != nil {
			return
		}

		var ids []string
		for _, volume := range out.Volumes {
			ids = append(ids, aws.ToString(volume.VolumeId))
		}
		if len(ids) > 0 {
			mu.Lock()
			unused[region] = ids
			mu.Unlock()
		}
	})
	return unused, nil
}

// GetUnusedEIPs lista Elastic IPs alocados mas sem associação.
func (r *AWSRepositoryImpl) GetUnusedEIPs(ctx context.Context, profile string, regions []string) (entity.UnusedEIPs, error) {
	eips := make(entity.UnusedEIPs)
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "ec2", regions, func(region string, client interface{}) {
		out, err := client.(*ec2.Client).DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
		if err != nil {
			return
		}

		var free []string
		for _, addr := range out.Addresses {
			if addr.AssociationId == nil {
				free = append(free, aws.ToString(addr.PublicIp))
			}
		}
		if len(free) > 0 {
			mu.Lock()
			eips[region] = free
			mu.Unlock()
		}
	})
	return eips, nil
}

// GetUntaggedResources varre EC2, RDS, Lambda e ELBv2 atrás de recursos sem
// nenhuma tag. O resultado é serviço -> região -> IDs.
func (r *AWSRepositoryImpl) GetUntaggedResources(ctx context.Context, profile string, regions []string) (entity.UntaggedResources, error) {
	untagged := entity.UntaggedResources{
		"EC2":    {},
		"RDS":    {},
		"Lambda": {},
		"ELBv2":  {},
	}
	var mu sync.Mutex
	record := func(service, region string, ids []string) {
		if len(ids) == 0 {
			return
		}
		mu.Lock()
		untagged[service][region] = ids
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		r.scanRegions(ctx, profile, "ec2", regions, func(region string, client interface{}) {
			out, err := client.(*ec2.Client).DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
			if err != nil {
				return
			}
			var ids []string
			for _, reservation := range out.Reservations {
				for _, instance := range reservation.Instances {
					if len(instance.Tags) == 0 {
						ids = append(ids, aws.ToString(instance.InstanceId))
					}
				}
			}
			record("EC2", region, ids)
		})
	}()

	go func() {
		defer wg.Done()
		r.scanRegions(ctx, profile, "rds", regions, func(region string, client interface{}) {
			out, err := client.(*rds.Client).DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
			if err != nil {
				return
			}
			var ids []string
			for _, db := range out.DBInstances {
				if len(db.TagList) == 0 {
					ids = append(ids, aws.ToString(db.DBInstanceIdentifier))
				}
			}
			record("RDS", region, ids)
		})
	}()

	go func() {
		defer wg.Done()
		r.scanRegions(ctx, profile, "lambda", regions, func(region string, client interface{}) {
			lambdaClient := client.(*lambda.Client)
			out, err := lambdaClient.ListFunctions(ctx, &lambda.ListFunctionsInput{})
			if err != nil {
				return
			}
			var ids []string
			for _, fn := range out.Functions {
				tags, err := lambdaClient.ListTags(ctx, &lambda.ListTagsInput{Resource: fn.FunctionArn})
				if err == nil && len(tags.Tags) == 0 {
					ids = append(ids, aws.ToString(fn.FunctionName))
				}
			}
			record("Lambda", region, ids)
		})
	}()

	go func() {
		defer wg.Done()
		r.scanRegions(ctx, profile, "elbv2", regions, func(region string, client interface{}) {
			record("ELBv2", region, untaggedLoadBalancers(ctx, client.(*elasticloadbalancingv2.Client)))
		})
	}()

	wg.Wait()
	return untagged, nil
}

// untaggedLoadBalancers devolve os nomes dos ELBv2 da região sem tag alguma.
// DescribeTags aceita no máximo 20 ARNs por chamada.
func untaggedLoadBalancers(ctx context.Context, elb *elasticloadbalancingv2.Client) []string {
	lbs, err := elb.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
	if err != nil {
		return nil
	}

	names := make(map[string]string, len(lbs.LoadBalancers))
	arns := make([]string, 0, len(lbs.LoadBalancers))
	for _, lb := range lbs.LoadBalancers {
		arn := aws.ToString(lb.LoadBalancerArn)
		arns = append(arns, arn)
		names[arn] = aws.ToString(lb.LoadBalancerName)
	}

	var bare []string
	for start := 0; start < len(arns); start += 20 {
		end := start + 20
		if end > len(arns) {
			end = len(arns)
		}
		tags, err := elb.DescribeTags(ctx, &elasticloadbalancingv2.DescribeTagsInput{ResourceArns: arns[start:end]})
		if err != nil {
			continue
		}
		for _, desc := range tags.TagDescriptions {
			if len(desc.Tags) == 0 {
				bare = append(bare, names[aws.ToString(desc.ResourceArn)])
			}
		}
	}
	return bare
}

// GetIdleLoadBalancers aponta os ELBv2 sem nenhum target registrado em seus
// target groups.
func (r *AWSRepositoryImpl) GetIdleLoadBalancers(ctx context.Context, profile string, regions []string) (entity.IdleLoadBalancers, error) {
	idle := make(entity.IdleLoadBalancers)
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "elbv2", regions, func(region string, client interface{}) {
		elb := client.(*elasticloadbalancingv2.Client)
		lbs, err := elb.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
		if err != nil {
			return
		}

		var names []string
		for _, lb := range lbs.LoadBalancers {
			if lbIsIdle(ctx, elb, lb) {
				names = append(names, aws.ToString(lb.LoadBalancerName))
			}
		}
		if len(names) > 0 {
			mu.Lock()
			idle[region] = names
			mu.Unlock()
		}
	})
	return idle, nil
}

// lbIsIdle considera ocioso o load balancer sem target group ou cujos target
// groups não têm nenhum target registrado.
func lbIsIdle(ctx context.Context, elb *elasticloadbalancingv2.Client, lb elbv2Types.LoadBalancer) bool {
	tgs, err := elb.DescribeTargetGroups(ctx, &elasticloadbalancingv2.DescribeTargetGroupsInput{
		LoadBalancerArn: lb.LoadBalancerArn,
	})
	if err != nil || len(tgs.TargetGroups) == 0 {
		return true
	}

	for _, tg := range tgs.TargetGroups {
		health, err := elb.DescribeTargetHealth(ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
			TargetGroupArn: tg.TargetGroupArn,
		})
		if err != nil {
			continue
		}
		if len(health.TargetHealthDescriptions) > 0 {
			return false
		}
	}
	return true
}

// GetBuckets lista os buckets S3 da conta com região, lifecycle e versionamento.
func (r *AWSRepositoryImpl) GetBuckets(ctx context.Context, profile string) ([]entity.BucketSummary, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "s3")
	if err != nil {
		return nil, err
	}
	s3Client := client.(*s3.Client)

	listOutput, err := s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("error listing buckets for profile %s: %w", profile, err)
	}

	var buckets []entity.BucketSummary
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, bucket := range listOutput.Buckets {
		wg.Add(1)
		go func(name string, created *time.Time) {
			defer wg.Done()

			summary := entity.BucketSummary{Name: name, Region: "us-east-1"}
			if created != nil {
				summary.CreatedAt = *created
			}

			locOutput, err := s3Client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(name)})
			if err == nil {
				summary.Region = normalizeBucketRegion(string(locOutput.LocationConstraint))
			}

			// As chamadas por bucket precisam do cliente da região do bucket.
			regionalClient, err := r.getServiceClient(ctx, profile, summary.Region, "s3")
			if err != nil {
				mu.Lock()
				buckets = append(buckets, summary)
				mu.Unlock()
				return
			}
			regionalS3 := regionalClient.(*s3.Client)

			if lc, err := regionalS3.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{Bucket: aws.String(name)}); err == nil {
				summary.HasLifecycle = len(lc.Rules) > 0
				summary.LifecycleRules = len(lc.Rules)
			}

			if ver, err := regionalS3.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: aws.String(name)}); err == nil {
				summary.VersioningEnabled = string(ver.Status) == "Enabled"
			}

			mu.Lock()
			buckets = append(buckets, summary)
			mu.Unlock()
		}(aws.ToString(bucket.Name), bucket.CreationDate)
	}
	wg.Wait()

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Name < buckets[j].Name })
	return buckets, nil
}

// normalizeBucketRegion resolve os valores legados de LocationConstraint.
func normalizeBucketRegion(constraint string) string {
	switch constraint {
	case "":
		return "us-east-1"
	case "EU":
		return "eu-west-1"
	default:
		return constraint
	}
}

// GetCloudWatchLogGroups lista os log groups das regiões com retenção e
// bytes armazenados. RetentionDays zero significa "Never expire"; corte e
// ordenação ficam com o chamador.
func (r *AWSRepositoryImpl) GetCloudWatchLogGroups(ctx context.Context, profile string, regions []string) ([]entity.CloudWatchLogGroupInfo, error) {
	var groups []entity.CloudWatchLogGroupInfo
	var mu sync.Mutex

	r.scanRegions(ctx, profile, "cloudwatchlogs", regions, func(region string, client interface{}) {
		paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(client.(*cloudwatchlogs.Client), &cloudwatchlogs.DescribeLogGroupsInput{
			Limit: aws.Int32(50),
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return
			}
			var batch []entity.CloudWatchLogGroupInfo
			for _, lg := range page.LogGroups {
				batch = append(batch, entity.CloudWatchLogGroupInfo{
					GroupName:     aws.ToString(lg.LogGroupName),
					Region:        region,
					StoredBytes:   aws.ToInt64(lg.StoredBytes),
					RetentionDays: int(aws.ToInt32(lg.RetentionInDays)),
				})
			}
			mu.Lock()
			groups = append(groups, batch...)
			mu.Unlock()
		}
	})
	return groups, nil
}

// GetLiveCostReport monta o CostReport do capstone a partir do Cost Explorer:
// custo do mês corrente, mês anterior, custo por serviço e a tendência dos
// últimos meses, tudo em paralelo.
func (r *AWSRepositoryImpl) GetLiveCostReport(ctx context.Context, profile string, months int) (entity.CostReport, error) {
	client, err := r.getServiceClient(ctx, profile, "", "costexplorer")
	if err != nil {
		return entity.CostReport{}, err
	}
	ceClient := client.(*costexplorer.Client)

	today := time.Now().UTC()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today
	// No dia 1 a janela mês-a-data seria vazia; o Cost Explorer exige end > start.
	if today.Day() == 1 {
		end = end.AddDate(0, 0, 1)
	}
	prevEnd := monthStart.AddDate(0, 0, -1)
	prevStart := time.Date(prevEnd.Year(), prevEnd.Month(), 1, 0, 0, 0, 0, time.UTC)

	if months <= 0 {
		months = 6
	}

	report := entity.CostReport{
		Profile:     profile,
		GeneratedAt: today,
		PeriodName:  today.Format("January 2006"),
	}

	// Quatro consultas independentes; cada goroutine escreve um campo
	// distinto do report, então não há corrida.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cost, err := r.getCostForPeriod(gctx, ceClient, monthStart, end)
		if err != nil {
			return fmt.Errorf("month to date cost: %w", err)
		}
		report.MonthToDate = cost
		return nil
	})
	g.Go(func() error {
		cost, err := r.getCostForPeriod(gctx, ceClient, prevStart, prevEnd)
		if err != nil {
			return fmt.Errorf("last month cost: %w", err)
		}
		report.LastMonth = cost
		return nil
	})
	g.Go(func() error {
		services, err := r.getCostByService(gctx, ceClient, monthStart, end)
		if err != nil {
			return fmt.Errorf("cost by service: %w", err)
		}
		report.ServiceCosts = services
		return nil
	})
	g.Go(func() error {
		trend, err := r.getMonthlyTrend(gctx, ceClient, months)
		if err != nil {
			return fmt.Errorf("monthly trend: %w", err)
		}
		report.MonthlyCosts = trend
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.CostReport{}, err
	}

	report.AccountID, _ = r.getAccountID(ctx, profile)
	report.Budgets, _ = r.GetBudgets(ctx, profile)

	// Projeção linear do fechamento do mês e taxa semanal.
	daysInMonth := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	dayFraction := float64(today.Day()) / float64(daysInMonth)
	if dayFraction > 0 {
		report.ForecastMonthEnd = report.MonthToDate / dayFraction
	}
	if today.Day() > 0 {
		report.WeeklyRunRate = report.MonthToDate / float64(today.Day()) * 7
	}

	if report.LastMonth > 0.01 {
		change := ((report.MonthToDate - report.LastMonth) / report.LastMonth) * 100
		report.PercentChange = &change
	}

	return report, nil
}

// parseAmount converte o valor textual que as APIs de custo devolvem.
func parseAmount(amount *string) float64 {
	if amount == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(*amount, 64)
	return v
}

func costAndUsageInput(start, end time.Time) *costexplorer.GetCostAndUsageInput {
	return &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
	}
}

func (r *AWSRepositoryImpl) getCostForPeriod(ctx context.Context, client *costexplorer.Client, start, end time.Time) (float64, error) {
	result, err := client.GetCostAndUsage(ctx, costAndUsageInput(start, end))
	if err != nil {
		return 0, err
	}

	if len(result.ResultsByTime) == 0 {
		return 0, nil
	}
	total, ok := result.ResultsByTime[0].Total["UnblendedCost"]
	if !ok {
		return 0, nil
	}
	return parseAmount(total.Amount), nil
}

func (r *AWSRepositoryImpl) getCostByService(ctx context.Context, client *costexplorer.Client, start, end time.Time) ([]entity.ServiceCost, error) {
	input := costAndUsageInput(start, end)
	input.GroupBy = []ceTypes.GroupDefinition{
		{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
	}

	result, err := client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(result.ResultsByTime) == 0 {
		return nil, nil
	}

	var costs []entity.ServiceCost
	for _, group := range result.ResultsByTime[0].Groups {
		amount := parseAmount(group.Metrics["UnblendedCost"].Amount)
		if amount <= 0.001 {
			continue
		}
		costs = append(costs, entity.ServiceCost{ServiceName: group.Keys[0], Cost: amount})
	}

	sort.Slice(costs, func(i, j int) bool { return costs[i].Cost > costs[j].Cost })
	return costs, nil
}

func (r *AWSRepositoryImpl) getMonthlyTrend(ctx context.Context, client *costexplorer.Client, months int) ([]entity.MonthlyCost, error) {
	today := time.Now().UTC()
	start := today.AddDate(0, -months, 0)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	result, err := client.GetCostAndUsage(ctx, costAndUsageInput(start, today))
	if err != nil {
		return nil, err
	}

	trend := make([]entity.MonthlyCost, 0, len(result.ResultsByTime))
	for _, period := range result.ResultsByTime {
		month, _ := time.Parse("2006-01-02", aws.ToString(period.TimePeriod.Start))
		trend = append(trend, entity.MonthlyCost{
			Month: month.Format("Jan 2006"),
			Cost:  parseAmount(period.Total["UnblendedCost"].Amount),
		})
	}
	return trend, nil
}

func (r *AWSRepositoryImpl) GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error) {
	client, err := r.getServiceClient(ctx, profile, "", "budgets")
	if err != nil {
		return nil, err
	}

	accountID, err := r.getAccountID(ctx, profile)
	if err != nil {
		return nil, err
	}

	result, err := client.(*budgets.Client).DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		// Budgets são opcionais: contas sem permissão seguem sem essa seção.
		return nil, nil
	}

	infos := make([]entity.BudgetInfo, 0, len(result.Budgets))
	for _, b := range result.Budgets {
		info := entity.BudgetInfo{Name: aws.ToString(b.BudgetName)}
		if b.BudgetLimit != nil {
			info.Limit = parseAmount(b.BudgetLimit.Amount)
		}
		if spend := b.CalculatedSpend; spend != nil {
			if spend.ActualSpend != nil {
				info.Actual = parseAmount(spend.ActualSpend.Amount)
			}
			if spend.ForecastedSpend != nil {
				info.Forecast = parseAmount(spend.ForecastedSpend.Amount)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
