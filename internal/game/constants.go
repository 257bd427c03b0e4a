package game

const (
	// OwnershipThreshold is the mastery level at which a territory becomes
	// permanently controlled
	OwnershipThreshold = 0.8

	// Human mastery progression
	MasteryGainBase      = 0.15
	MasteryGainPerStreak = 0.05
	MasteryLossOnMiss    = 0.05

	// AI mastery progression (coarser simulated attempts)
	AIMasteryGainMin    = 0.2
	AIMasteryGainSpread = 0.3

	// Synapse economy
	RewardBase       = 100
	RewardCostShare  = 0.2
	RewardPerStreak  = 25
	PenaltyCostShare = 0.2
	AICostShare      = 0.1
	AIRewardShare    = 0.2

	HumanStartingSynapse = 1000
	AIStartingSynapse    = 1500

	// Neural connection model
	NeuronBaseCount    = 8
	NeuronMasteryCount = 20
	NeuronRadiusMin    = 3.0
	NeuronRadiusSpread = 2.0
	ConnectionDistance = 4.0
	ConnectionCap      = 250

	// AI decision weights
	AIDifficultyWeight    = 100
	AIAffordableBonus     = 200
	AIUnaffordablePenalty = -500
	AIBaseSuccessRate     = 0.6
	AIDifficultyPenalty   = 0.1
	AISuccessFloor        = 0.25
	AISuccessCeil         = 0.85

	// Match timing (seconds)
	DefaultMatchSeconds = 120
	SingleMatchSeconds  = 300
	MultiMatchSeconds   = 600

	// SSEBufferSize is the buffer size for SSE message channels
	SSEBufferSize = 10

	// SSETimeoutSeconds is the timeout for sending messages to SSE clients
	SSETimeoutSeconds = 1

	// JoinCodeLength is the length of generated join codes
	JoinCodeLength = 6

	// JoinCodeChars are the characters used for join codes (excluding ambiguous chars)
	JoinCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// DefaultPlayerColors are assigned to human players in join order
var DefaultPlayerColors = []string{"#4A90E2", "#E24A90", "#22c55e", "#FFD700", "#FF6B35"}

// AIColor marks the AI opponent's zone in the renderer
const AIColor = "#ef4444"
