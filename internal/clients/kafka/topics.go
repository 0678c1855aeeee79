package kafka

// Default topic and group names; each can be overridden through config.
const (
	// TopicReferralEvents carries referral_link.created and
	// referral.status_changed events.
	TopicReferralEvents = "referral-events"

	// TopicVendorEvents carries deep link vendor callbacks relayed from the
	// vendor's event stream.
	TopicVendorEvents = "deeplink-vendor-events"

	ConsumerGroupVendorEvents = "referral-vendor-events"
)
